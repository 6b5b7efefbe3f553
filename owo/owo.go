// Package owo is a small client for the owo.whats-th.is upload API, used to
// host text that is too long to fit in an embed field.
package owo

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
)

type Client struct {
	token  string
	client *http.Client
}

func NewClient(token string) *Client {
	return &Client{
		token:  token,
		client: &http.Client{},
	}
}

// Upload posts the text as a plain-text file and returns a public link to it.
func (o *Client) Upload(text string) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="files[]"; filename="text.txt"`)
	h.Set("Content-Type", "text/plain;charset=utf-8")

	part, err := writer.CreatePart(h)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, bytes.NewReader([]byte(text))); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", "https://api.awau.moe/upload/pomf", body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", o.token)

	res, err := o.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	result := Result{}
	if err := json.Unmarshal(resBody, &result); err != nil {
		return "", err
	}

	if !result.Success {
		return "", errors.New(result.Description)
	}
	if len(result.Files) > 0 {
		return "https://chito.ge/" + result.Files[0].URL, nil
	}
	return "", nil
}
