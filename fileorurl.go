package apomap

import (
	"io"
	"io/ioutil"
	"net/http"
	"os"
	"strings"
)

// OpenFileOrURL reads the full contents of a local path or, if the input
// starts with http, of a remote URL.
func OpenFileOrURL(input string) ([]byte, error) {
	var f io.ReadCloser

	if strings.HasPrefix(input, "http") {
		resp, err := http.Get(input)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		f = resp.Body
	} else {
		file, err := os.Open(ExpandHome(input))
		if err != nil {
			return nil, err
		}
		defer file.Close()

		f = file
	}

	return ioutil.ReadAll(f)
}
