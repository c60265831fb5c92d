package irecharge

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/pkg/errors"
)

var (
	errBadRequest = errors.New("bad_request")
	errRemote     = errors.New("remote_error")
)

type client struct {
	httpClient *http.Client
	vendorCode string
}

func newClient(vendorCode string) *client {
	return &client{
		httpClient: &http.Client{},
		vendorCode: vendorCode,
	}
}

func (c *client) GETAndUnmarshalJson(ctx context.Context, link string, out interface{}) error {
	req, err := http.NewRequest("GET", link, nil)
	if err != nil {
		return errors.Wrap(err, "Failed new request")
	}
	req = req.WithContext(ctx)
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "Failed do request")
	}
	defer resp.Body.Close()
	b, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "Failed read all body")
	}
	if resp.StatusCode == 400 {
		return errBadRequest
	}
	if resp.StatusCode >= 500 {
		return errRemote
	}
	err = json.Unmarshal(b, out)
	if err != nil {
		return errors.Wrap(err, "Failed unmarshal")
	}
	return nil
}
