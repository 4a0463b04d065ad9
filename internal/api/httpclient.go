package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mediminder/mediminder/internal/logging"
	"github.com/mediminder/mediminder/internal/models"
)

// ResetSentMessage is the generic password-reset acknowledgement. It is
// also returned for an unroutable reset endpoint so the client never
// leaks whether an account (or the endpoint itself) exists.
const ResetSentMessage = "If this email exists, a reset link has been sent."

// HTTPClient is the Client implementation bound to a fixed base URL.
// The bearer token is set by the session layer after login/restore and
// cleared on logout.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	token   string
	log     logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient constructs a client for the given base URL. A trailing
// slash on baseURL is tolerated. timeout bounds every request.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		log:     log,
	}
}

// SetToken installs the bearer token used for medicine operations.
// An empty token removes the Authorization header.
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// do issues one request and funnels the response through decode.
func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, auth bool) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if auth && c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	return decode(resp)
}

// decode implements the uniform response contract:
//
//  1. Read the whole body as text; never assume it parses.
//  2. If the text is not valid JSON, sniff for an HTML document and map
//     404/500 to fixed messages; anything else unparseable produces a
//     generic error carrying a truncated excerpt.
//  3. On an HTTP failure status, surface the body's "message" or
//     "error" field, falling back to a generic status message.
//  4. Otherwise hand back the raw parsed body.
func decode(resp *http.Response) (json.RawMessage, error) {
	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body", ErrUnavailable)
	}

	raw := bytes.TrimSpace(text)
	if len(raw) == 0 {
		raw = []byte("{}")
	}

	if !json.Valid(raw) {
		lower := strings.ToLower(string(raw))
		if strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html") {
			switch resp.StatusCode {
			case http.StatusNotFound:
				return nil, &Error{Status: resp.StatusCode, Message: "server endpoint not found (404), please contact support"}
			case http.StatusInternalServerError:
				return nil, &Error{Status: resp.StatusCode, Message: "internal server error (500), please try again later"}
			default:
				return nil, &Error{Status: resp.StatusCode, Message: fmt.Sprintf("server returned an invalid HTML response (%d)", resp.StatusCode)}
			}
		}
		excerpt := string(raw)
		if len(excerpt) > 50 {
			excerpt = excerpt[:50]
		}
		return nil, fmt.Errorf("invalid response format: %s...", excerpt)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var e struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		_ = json.Unmarshal(raw, &e)
		msg := e.Message
		if msg == "" {
			msg = e.Error
		}
		if msg == "" {
			msg = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return nil, &Error{Status: resp.StatusCode, Message: msg}
	}

	return json.RawMessage(raw), nil
}

func (c *HTTPClient) Register(ctx context.Context, username, password, email, phone string) (*models.AuthResponse, error) {
	payload := models.RegisterRequest{
		Username: username,
		Name:     username,
		Password: password,
		Email:    email,
		Phone:    phone,
	}
	raw, err := c.do(ctx, http.MethodPost, "/api/auth/register", payload, false)
	if err != nil {
		return nil, err
	}
	var ar models.AuthResponse
	if err := json.Unmarshal(raw, &ar); err != nil {
		return nil, fmt.Errorf("decode auth response: %w", err)
	}
	return &ar, nil
}

func (c *HTTPClient) Login(ctx context.Context, identifier, password string) (*models.AuthResponse, error) {
	payload := models.LoginRequest{Email: identifier, Password: password}
	raw, err := c.do(ctx, http.MethodPost, "/api/auth/login", payload, false)
	if err != nil {
		return nil, err
	}
	var ar models.AuthResponse
	if err := json.Unmarshal(raw, &ar); err != nil {
		return nil, fmt.Errorf("decode auth response: %w", err)
	}
	return &ar, nil
}

// RequestPasswordReset asks the backend to mail a reset link and returns
// the user-visible acknowledgement. A 404 from the server is masked as a
// soft success; the masked status is logged so a misconfigured base URL
// is still observable.
func (c *HTTPClient) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	raw, err := c.do(ctx, http.MethodPost, "/api/auth/forgot-password", map[string]string{"email": email}, false)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			c.log.Warn(ctx, "password reset returned 404, masking as success", "message", apiErr.Message)
			return ResetSentMessage, nil
		}
		return "", err
	}
	var body struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(raw, &body)
	if body.Message == "" {
		body.Message = ResetSentMessage
	}
	return body.Message, nil
}

// ListMedicines fetches the authenticated user's medicines. A success
// body that is not a JSON array is treated as an empty list rather than
// an error; some backend deployments answer an object here.
func (c *HTTPClient) ListMedicines(ctx context.Context) ([]models.Medicine, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/medicines", nil, true)
	if err != nil {
		return nil, err
	}
	var meds []models.Medicine
	if err := json.Unmarshal(raw, &meds); err != nil {
		return []models.Medicine{}, nil
	}
	return meds, nil
}

// AddMedicine creates a medicine. When the backend answers with
// something other than a single entity (it occasionally returns the
// whole list), AddMedicine returns (nil, nil) and the caller should
// reload the list instead of appending.
func (c *HTTPClient) AddMedicine(ctx context.Context, fields models.MedicineFields) (*models.Medicine, error) {
	raw, err := c.do(ctx, http.MethodPost, "/api/medicines", fields, true)
	if err != nil {
		return nil, err
	}
	var med models.Medicine
	if err := json.Unmarshal(raw, &med); err != nil || med.ID == "" {
		return nil, nil
	}
	return &med, nil
}

// UpdateMedicine edits a medicine. Like AddMedicine, a success body
// that is not a single entity yields (nil, nil); the caller reloads the
// list instead of replacing the edited entry with a zero value.
func (c *HTTPClient) UpdateMedicine(ctx context.Context, id string, fields models.MedicineFields) (*models.Medicine, error) {
	raw, err := c.do(ctx, http.MethodPut, "/api/medicines/"+url.PathEscape(id), fields, true)
	if err != nil {
		return nil, err
	}
	var med models.Medicine
	if err := json.Unmarshal(raw, &med); err != nil || med.ID == "" {
		return nil, nil
	}
	return &med, nil
}

func (c *HTTPClient) DeleteMedicine(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/medicines/"+url.PathEscape(id), nil, true)
	return err
}
