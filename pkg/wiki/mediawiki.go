package wiki

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"podwiki/pkg/httpclient"
)

// APIError is an error object returned by the MediaWiki action API.
type APIError struct {
	Action string
	Code   string
	Info   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mediawiki %s: %s: %s", e.Action, e.Code, e.Info)
}

// MediaWiki talks to a wiki through its action API (api.php).
type MediaWiki struct {
	apiURL    string
	client    *httpclient.HTTPClient
	csrfToken string
}

// NewMediaWiki creates a client for the api.php endpoint at apiURL.
func NewMediaWiki(apiURL string, client *httpclient.HTTPClient) *MediaWiki {
	return &MediaWiki{
		apiURL: apiURL,
		client: client,
	}
}

// Login opens a session with a bot password. Later requests reuse the
// session cookie held by the HTTP client.
func (w *MediaWiki) Login(ctx context.Context, username, password string) error {
	res, err := w.get(ctx, "query", url.Values{"meta": {"tokens"}, "type": {"login"}})
	if err != nil {
		return fmt.Errorf("fetch login token: %w", err)
	}
	token := res.Get("query.tokens.logintoken").String()
	if token == "" {
		return fmt.Errorf("fetch login token: empty token")
	}

	res, err = w.post(ctx, "login", url.Values{
		"lgname":     {username},
		"lgpassword": {password},
		"lgtoken":    {token},
	})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if result := res.Get("login.result").String(); result != "Success" {
		return fmt.Errorf("%w as %s: %s %s", ErrNotLoggedIn, username, result, res.Get("login.reason").String())
	}

	w.csrfToken = ""
	return nil
}

func (w *MediaWiki) PageExists(ctx context.Context, title string) (bool, error) {
	page, err := w.queryPage(ctx, url.Values{"titles": {title}})
	if err != nil {
		return false, err
	}
	return !page.Get("missing").Bool(), nil
}

func (w *MediaWiki) PageText(ctx context.Context, title string) (string, error) {
	page, err := w.queryPage(ctx, url.Values{
		"titles":  {title},
		"prop":    {"revisions"},
		"rvprop":  {"content"},
		"rvslots": {"main"},
	})
	if err != nil {
		return "", err
	}
	if page.Get("missing").Bool() {
		return "", fmt.Errorf("%w: %s", ErrPageNotFound, title)
	}
	return page.Get("revisions.0.slots.main.content").String(), nil
}

func (w *MediaWiki) EditPage(ctx context.Context, title, text, summary string) error {
	token, err := w.token(ctx)
	if err != nil {
		return err
	}

	res, err := w.post(ctx, "edit", url.Values{
		"title":   {title},
		"text":    {text},
		"summary": {summary},
		"bot":     {"1"},
		"token":   {token},
	})
	if err != nil {
		return fmt.Errorf("edit %s: %w", title, err)
	}
	if result := res.Get("edit.result").String(); result != "Success" {
		return &APIError{Action: "edit", Code: strings.ToLower(result), Info: title}
	}
	return nil
}

func (w *MediaWiki) FileExists(ctx context.Context, filename string) (bool, error) {
	page, err := w.queryPage(ctx, url.Values{
		"titles": {"File:" + filename},
		"prop":   {"imageinfo"},
	})
	if err != nil {
		return false, err
	}
	return page.Get("imageinfo.#").Int() > 0, nil
}

func (w *MediaWiki) UploadFromURL(ctx context.Context, filename, sourceURL string) error {
	token, err := w.token(ctx)
	if err != nil {
		return err
	}

	res, err := w.post(ctx, "upload", url.Values{
		"filename":       {filename},
		"url":            {sourceURL},
		"comment":        {"Episode image"},
		"ignorewarnings": {"1"},
		"token":          {token},
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", filename, err)
	}
	if result := res.Get("upload.result").String(); result != "Success" {
		return &APIError{Action: "upload", Code: strings.ToLower(result), Info: filename}
	}
	return nil
}

// queryPage runs action=query for a single title and returns its page object.
func (w *MediaWiki) queryPage(ctx context.Context, params url.Values) (gjson.Result, error) {
	res, err := w.get(ctx, "query", params)
	if err != nil {
		return gjson.Result{}, err
	}

	page := res.Get("query.pages.0")
	if !page.Exists() {
		return gjson.Result{}, &APIError{Action: "query", Code: "nopage", Info: params.Get("titles")}
	}
	if page.Get("invalid").Bool() {
		return gjson.Result{}, &APIError{Action: "query", Code: "invalidtitle", Info: page.Get("invalidreason").String()}
	}
	return page, nil
}

func (w *MediaWiki) token(ctx context.Context) (string, error) {
	if w.csrfToken != "" {
		return w.csrfToken, nil
	}
	res, err := w.get(ctx, "query", url.Values{"meta": {"tokens"}})
	if err != nil {
		return "", fmt.Errorf("fetch csrf token: %w", err)
	}
	token := res.Get("query.tokens.csrftoken").String()
	if token == "" {
		return "", fmt.Errorf("fetch csrf token: empty token")
	}
	w.csrfToken = token
	return token, nil
}

func (w *MediaWiki) get(ctx context.Context, action string, params url.Values) (gjson.Result, error) {
	q := withDefaults(action, params)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.apiURL+"?"+q.Encode(), nil)
	if err != nil {
		return gjson.Result{}, err
	}
	return w.do(req, action)
}

func (w *MediaWiki) post(ctx context.Context, action string, params url.Values) (gjson.Result, error) {
	form := withDefaults(action, params)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return gjson.Result{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return w.do(req, action)
}

func (w *MediaWiki) do(req *http.Request, action string) (gjson.Result, error) {
	resp, err := w.client.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return gjson.Result{}, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("response is not valid JSON")
	}

	res := gjson.ParseBytes(body)
	if code := res.Get("error.code"); code.Exists() {
		if code.String() == "badtoken" {
			w.csrfToken = ""
		}
		return gjson.Result{}, &APIError{Action: action, Code: code.String(), Info: res.Get("error.info").String()}
	}
	return res, nil
}

func withDefaults(action string, params url.Values) url.Values {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("action", action)
	q.Set("format", "json")
	q.Set("formatversion", "2")
	return q
}
