// Package client implements the request submission workflow against the HTTP
// API: presign each file, upload the bytes directly to object storage, then
// submit the request with the surviving attachment descriptors.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// File is one attachment to upload and link to the request.
type File struct {
	Name        string
	ContentType string
	IsPublic    bool
	Content     []byte
}

// Submission is the request to create once uploads complete.
type Submission struct {
	Type           string
	Reference      string
	Date           time.Time
	Description    string
	DestinatarioID *string
	Files          []File
}

// Request is the API representation returned on creation.
type Request struct {
	ID             string       `json:"id"`
	Type           string       `json:"type"`
	Reference      string       `json:"reference"`
	Date           string       `json:"date"`
	Description    string       `json:"description"`
	Status         string       `json:"status"`
	DestinatarioID *string      `json:"destinatarioId"`
	Attachments    []Attachment `json:"attachments"`
}

// Attachment is the API representation of a stored file.
type Attachment struct {
	ID         string `json:"id"`
	FileName   string `json:"fileName"`
	StorageKey string `json:"cloud_storage_path"`
	IsPublic   bool   `json:"isPublic"`
}

type presignRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	IsPublic    bool   `json:"isPublic"`
}

type presignResponse struct {
	UploadURL  string `json:"uploadUrl"`
	StorageKey string `json:"cloud_storage_path"`
}

type attachmentPayload struct {
	FileName   string `json:"fileName"`
	StorageKey string `json:"cloud_storage_path"`
	IsPublic   bool   `json:"isPublic"`
}

type createPayload struct {
	Type           string              `json:"type"`
	Reference      string              `json:"reference"`
	Date           string              `json:"date"`
	Description    string              `json:"description"`
	DestinatarioID *string             `json:"destinatarioId,omitempty"`
	Attachments    []attachmentPayload `json:"attachments"`
}

// Client talks to the document request API with a bearer token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New builds a client. httpClient may be nil, in which case
// http.DefaultClient is used; uploads carry no per-file timeout.
func New(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    httpClient,
	}
}

// Submit runs the full workflow: presign and upload every file concurrently,
// wait for all uploads, then create the request. Files whose presign or upload
// fails are dropped from the submission without failing the workflow.
func (c *Client) Submit(ctx context.Context, sub Submission) (*Request, error) {
	uploaded := make([]attachmentPayload, len(sub.Files))
	ok := make([]bool, len(sub.Files))

	var wg sync.WaitGroup
	for i := range sub.Files {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key, err := c.uploadFile(ctx, sub.Files[i])
			if err != nil {
				return
			}
			uploaded[i] = attachmentPayload{
				FileName:   sub.Files[i].Name,
				StorageKey: key,
				IsPublic:   sub.Files[i].IsPublic,
			}
			ok[i] = true
		}(i)
	}
	wg.Wait()

	attachments := make([]attachmentPayload, 0, len(sub.Files))
	for i := range sub.Files {
		if ok[i] {
			attachments = append(attachments, uploaded[i])
		}
	}

	payload := createPayload{
		Type:           sub.Type,
		Reference:      sub.Reference,
		Date:           sub.Date.Format("2006-01-02"),
		Description:    sub.Description,
		DestinatarioID: sub.DestinatarioID,
		Attachments:    attachments,
	}

	var envelope struct {
		Data Request `json:"data"`
	}
	if err := c.postJSON(ctx, "/requests", payload, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// uploadFile presigns and PUTs one file, returning its storage key.
func (c *Client) uploadFile(ctx context.Context, f File) (string, error) {
	var presigned presignResponse
	err := c.postJSON(ctx, "/upload/presigned", presignRequest{
		FileName:    f.Name,
		ContentType: f.ContentType,
		IsPublic:    f.IsPublic,
	}, &presigned)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, presigned.UploadURL, bytes.NewReader(f.Content))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", f.ContentType)
	if signedHeadersInclude(presigned.UploadURL, "content-disposition") {
		req.Header.Set("Content-Disposition", "attachment")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) //nolint:errcheck

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("upload failed with status %d", resp.StatusCode)
	}
	return presigned.StorageKey, nil
}

// signedHeadersInclude reports whether the presigned URL's X-Amz-SignedHeaders
// covers the given header. Headers the signature covers must be sent verbatim.
func signedHeadersInclude(rawURL, header string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	signed := parsed.Query().Get("X-Amz-SignedHeaders")
	for _, h := range strings.Split(signed, ";") {
		if strings.EqualFold(h, header) {
			return true
		}
	}
	return false
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s returned status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
