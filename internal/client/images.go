// ABOUTME: Image endpoints: list, get, delete, upload, and transformations
// ABOUTME: Also holds the local working-copy helpers used by gallery views

package client

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/jothyanandanch/ssnapify/internal/config"
)

// ListImagesOptions narrows an image listing. TransformationType is the only
// server-side filter; search and date filtering happen client-side.
type ListImagesOptions struct {
	TransformationType string
	Limit              int
	Offset             int
}

// ListImages fetches the current user's image assets.
func (c *Client) ListImages(ctx context.Context, opts ListImagesOptions) ([]ImageAsset, error) {
	query := url.Values{}
	if opts.TransformationType != "" && opts.TransformationType != "all" {
		query.Set("transformation_type", opts.TransformationType)
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		query.Set("offset", strconv.Itoa(opts.Offset))
	}

	var images []ImageAsset
	if err := c.getJSON(ctx, "/images", query, true, &images); err != nil {
		return nil, err
	}
	return images, nil
}

// GetImage fetches a single image asset.
func (c *Client) GetImage(ctx context.Context, id int) (*ImageAsset, error) {
	var image ImageAsset
	if err := c.getJSON(ctx, fmt.Sprintf("/images/%d", id), nil, true, &image); err != nil {
		return nil, err
	}
	return &image, nil
}

// DeleteImage removes an image asset server-side.
func (c *Client) DeleteImage(ctx context.Context, id int) error {
	return c.deleteReq(ctx, fmt.Sprintf("/images/%d", id))
}

// ProgressFunc receives upload progress as a fraction in [0, 1].
type ProgressFunc func(fraction float64)

// UploadImage uploads a file as multipart form data (field "file", optional
// "title"). The Content-Type header carries the multipart boundary. Progress
// is reported as the transport consumes the file body.
func (c *Client) UploadImage(ctx context.Context, file io.Reader, filename, title string, size int64, progress ProgressFunc) (*ImageAsset, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		src := file
		if progress != nil && size > 0 {
			src = &progressReader{r: file, total: size, fn: progress}
		}
		if _, err := io.Copy(part, src); err != nil {
			pw.CloseWithError(err)
			return
		}
		if title != "" {
			if err := mw.WriteField("title", title); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		pw.CloseWithError(mw.Close())
	}()

	resp, err := c.do(ctx, http.MethodPost, "/images", nil, pr, mw.FormDataContentType(), true)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var image ImageAsset
	if err := decodeJSON(resp, &image); err != nil {
		return nil, err
	}
	return &image, nil
}

// ApplyTransformation requests a transformation of an existing image.
// generative_fill and replace_bg accept a prompt; the body is form-encoded.
func (c *Client) ApplyTransformation(ctx context.Context, id int, transformation, prompt string) (*ImageAsset, error) {
	if _, ok := config.TransformationCost(transformation); !ok {
		return nil, fmt.Errorf("unknown transformation type: %s", transformation)
	}

	form := url.Values{}
	if prompt != "" {
		form.Set("prompt", prompt)
	}

	var image ImageAsset
	if err := c.postForm(ctx, fmt.Sprintf("/images/%d/%s", id, transformation), form, &image); err != nil {
		return nil, err
	}
	return &image, nil
}

// progressReader counts bytes pulled from the underlying reader and reports
// the completed fraction of total.
type progressReader struct {
	r     io.Reader
	total int64
	read  int64
	fn    ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		f := float64(p.read) / float64(p.total)
		if f > 1 {
			f = 1
		}
		p.fn(f)
	}
	return n, err
}

// FilterByType returns the subset of images whose transformation type equals
// t. "all" (or empty) returns the full list; "original" matches assets with
// no transformation.
func FilterByType(images []ImageAsset, t string) []ImageAsset {
	if t == "" || t == "all" {
		return images
	}
	out := make([]ImageAsset, 0, len(images))
	for _, img := range images {
		imgType := img.TransformationType
		if imgType == "" {
			imgType = "original"
		}
		if imgType == t {
			out = append(out, img)
		}
	}
	return out
}

// SearchByTitle returns the images whose title contains term,
// case-insensitive. An empty term returns the full list.
func SearchByTitle(images []ImageAsset, term string) []ImageAsset {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return images
	}
	out := make([]ImageAsset, 0, len(images))
	for _, img := range images {
		if strings.Contains(strings.ToLower(img.Title), term) {
			out = append(out, img)
		}
	}
	return out
}

// RemoveByID is the single local-patch point for optimistic deletes: it
// removes exactly the entry with the given id, leaving all others untouched.
// A nonexistent id is a no-op and reports false.
func RemoveByID(images []ImageAsset, id int) ([]ImageAsset, bool) {
	for i, img := range images {
		if img.ID == id {
			out := make([]ImageAsset, 0, len(images)-1)
			out = append(out, images[:i]...)
			out = append(out, images[i+1:]...)
			return out, true
		}
	}
	return images, false
}
