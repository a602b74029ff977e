package matrixio

import (
	"fmt"
	"io"
	"net/http"
	"os"
)

// Fetch downloads url to out. Used by the pull command to populate the
// local matrix cache.
func Fetch(url, out string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("http error: %s", resp.Status)
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(out)
		return err
	}
	return nil
}
