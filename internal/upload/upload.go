// Package upload pushes an image to a hosting backend and returns a
// public URL with a ready-to-embed Markdown reference.
package upload

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/swagqa/swagqa-cli/internal/ghcli"
)

const uploadTimeout = 60 * time.Second

// Supported hosting backends.
const (
	HostCatbox = "catbox"
	HostImgbb  = "imgbb"
	HostGitHub = "github"
)

const (
	catboxEndpoint = "https://catbox.moe/user/api.php"
	imgbbEndpoint  = "https://api.imgbb.com/1/upload"
)

// Options selects and configures the backend.
type Options struct {
	Host   string
	APIKey string // imgbb
	Repo   string // github, "owner/name"
	PR     string // github, folder under qa/
	Branch string // github, defaults to "assets"
}

// Result is the machine-readable upload outcome.
type Result struct {
	URL      string `json:"url"`
	Markdown string `json:"markdown"`
	Host     string `json:"host"`
}

// Uploader performs uploads. Endpoint URLs and the github writer are
// fields so tests can point them elsewhere.
type Uploader struct {
	client      *http.Client
	catboxURL   string
	imgbbURL    string
	putContents func(repo, path, branch, message, contentB64 string) error
}

// New builds an Uploader against the real backends.
func New() *Uploader {
	return &Uploader{
		client:      &http.Client{Timeout: uploadTimeout},
		catboxURL:   catboxEndpoint,
		imgbbURL:    imgbbEndpoint,
		putContents: ghcli.PutContents,
	}
}

// Upload pushes the file at path to the selected backend.
func (u *Uploader) Upload(path string, opts Options) (*Result, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("file not found: %s", path)
	}

	switch opts.Host {
	case HostCatbox, "":
		return u.uploadCatbox(path)
	case HostImgbb:
		return u.uploadImgbb(path, opts.APIKey)
	case HostGitHub:
		return u.uploadGitHub(path, opts)
	default:
		return nil, fmt.Errorf("unknown host: %s (use: %s, %s, %s)", opts.Host, HostCatbox, HostImgbb, HostGitHub)
	}
}

func (u *Uploader) uploadCatbox(path string) (*Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if err := form.WriteField("reqtype", "fileupload"); err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}
	part, err := form.CreateFormFile("fileToUpload", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}

	resp, err := u.client.Post(u.catboxURL, form.FormDataContentType(), &body)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	link := strings.TrimSpace(string(raw))
	if resp.StatusCode != http.StatusOK || !strings.HasPrefix(link, "https://") {
		return nil, fmt.Errorf("upload failed: %s", link)
	}

	return newResult(link, path, HostCatbox), nil
}

func (u *Uploader) uploadImgbb(path, apiKey string) (*Result, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("imgbb requires --api-key")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	form := url.Values{
		"key":   {apiKey},
		"image": {base64.StdEncoding.EncodeToString(content)},
	}
	resp, err := u.client.PostForm(u.imgbbURL, form)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upload failed: %s", strings.TrimSpace(string(raw)))
	}

	link := gjson.GetBytes(raw, "data.display_url").String()
	if link == "" {
		return nil, fmt.Errorf("upload failed: no display_url in response")
	}
	return newResult(link, path, HostImgbb), nil
}

func (u *Uploader) uploadGitHub(path string, opts Options) (*Result, error) {
	if opts.Repo == "" {
		return nil, fmt.Errorf("github requires --repo")
	}
	branch := opts.Branch
	if branch == "" {
		branch = "assets"
	}
	folder := opts.PR
	if folder == "" {
		folder = "misc"
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	name := fmt.Sprintf("qa/%s/%s", folder, filepath.Base(path))
	message := "qa: " + stem(path)
	if err := u.putContents(opts.Repo, name, branch, message, base64.StdEncoding.EncodeToString(content)); err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}

	link := fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s", opts.Repo, branch, name)
	return newResult(link, path, HostGitHub), nil
}

func newResult(link, path, host string) *Result {
	return &Result{
		URL:      link,
		Markdown: fmt.Sprintf("![%s](%s)", stem(path), link),
		Host:     host,
	}
}

// stem is the file name without its extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
