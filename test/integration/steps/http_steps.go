//go:build integration

package steps

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
)

var namedPlaceholder = regexp.MustCompile(`\{\{(account|category):([^}]+)\}\}`)

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = "" // unauthenticated from here on
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	path, err := t.replacePlaceholders(path)
	if err != nil {
		return err
	}
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	path, err := t.replacePlaceholders(path)
	if err != nil {
		return err
	}

	var payload []byte
	if body != nil && body.Content != "" {
		content, err := t.replacePlaceholders(body.Content)
		if err != nil {
			return err
		}
		payload = []byte(content)
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) replacePlaceholders(content string) (string, error) {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	content = strings.ReplaceAll(content, "{{transaction_id}}", t.transactionID.String())
	content = strings.ReplaceAll(content, "{{backup_key}}", t.backupKey)
	content = strings.ReplaceAll(content, "{{today}}", t.timeMock.Now().UTC().Format("2006-01-02"))

	var lookupErr error
	content = namedPlaceholder.ReplaceAllStringFunc(content, func(match string) string {
		parts := namedPlaceholder.FindStringSubmatch(match)
		var id uuid.UUID
		var err error
		if parts[1] == "account" {
			id, err = t.accountID(parts[2])
		} else {
			id, err = t.categoryID(parts[2])
		}
		if err != nil && lookupErr == nil {
			lookupErr = err
		}
		return id.String()
	})
	return content, lookupErr
}

func (t *testContext) accountID(name string) (uuid.UUID, error) {
	if id, ok := t.accounts[name]; ok {
		return id, nil
	}
	return uuid.Nil, fmt.Errorf("no account named %q was created in this scenario", name)
}

// categoryID looks categories up through the API so default categories resolve too.
func (t *testContext) categoryID(name string) (uuid.UUID, error) {
	if id, ok := t.categories[name]; ok {
		return id, nil
	}

	resp, err := t.call(http.MethodGet, "/api/v1/categories", nil)
	if err != nil {
		return uuid.Nil, err
	}
	items, _ := getFieldValue(resp.body, "categories").([]any)
	for _, item := range items {
		categoryName, _ := getFieldValue(item, "name").(string)
		rawID, _ := getFieldValue(item, "id").(string)
		if id, err := uuid.Parse(rawID); err == nil {
			t.categories[categoryName] = id
		}
	}

	if id, ok := t.categories[name]; ok {
		return id, nil
	}
	return uuid.Nil, fmt.Errorf("category %q not found", name)
}

// call sends a request without touching the scenario's last response.
func (t *testContext) call(method, path string, payload []byte) (*response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, t.server.URL+path, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	result := &response{
		status:  resp.StatusCode,
		headers: resp.Header,
		raw:     string(bodyBytes),
	}
	var decoded map[string]any
	if err := json.Unmarshal(bodyBytes, &decoded); err != nil {
		result.body = string(bodyBytes)
	} else {
		result.body = decoded
		t.capture(method, path, decoded)
	}
	return result, nil
}

func (t *testContext) callJSON(method, path string, payload any, expectedStatus int) (*response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	resp, err := t.call(method, path, body)
	if err != nil {
		return nil, err
	}
	if resp.status != expectedStatus {
		return nil, fmt.Errorf("%s %s: expected status %d, got %d (body: %s)", method, path, expectedStatus, resp.status, resp.raw)
	}
	return resp, nil
}

// capture remembers ids and tokens so later steps can reference them.
func (t *testContext) capture(method, path string, body map[string]any) {
	if token, ok := body["access_token"].(string); ok && token != "" {
		t.accessToken = token
	}
	if token, ok := body["refresh_token"].(string); ok && token != "" {
		t.refreshToken = token
	}
	if method != http.MethodPost {
		return
	}

	id, _ := uuid.Parse(fmt.Sprint(body["id"]))
	name, _ := body["name"].(string)
	switch {
	case strings.HasPrefix(path, "/api/v1/accounts") && id != uuid.Nil:
		t.accounts[name] = id
	case strings.HasPrefix(path, "/api/v1/categories") && id != uuid.Nil:
		t.categories[name] = id
	case strings.HasPrefix(path, "/api/v1/transactions") && id != uuid.Nil:
		t.transactionID = id
	case path == "/api/v1/backups":
		if key, ok := body["key"].(string); ok {
			t.backupKey = key
		}
	}
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	resp, err := t.call(method, path, payload)
	if err != nil {
		return err
	}
	t.response = resp
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %s)", expectedStatus, t.response.status, t.response.raw)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %s", t.response.raw)
	}
	return nil
}

func (t *testContext) jsonBody() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %s", t.response.raw)
	}
	return body, nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	expectedValue, err = t.replacePlaceholders(expectedValue)
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	items, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, body)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func (t *testContext) theResponseBodyShouldContain(text string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if !strings.Contains(t.response.raw, text) {
		return fmt.Errorf("response body does not contain %q: %s", text, t.response.raw)
	}
	return nil
}

func (t *testContext) theResponseHeaderShouldContain(header, text string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if value := t.response.headers.Get(header); !strings.Contains(value, text) {
		return fmt.Errorf("header %s expected to contain %q, got %q", header, text, value)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var field any
	switch v := object.(type) {
	case map[string]any, []any:
		field = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &field); err != nil {
			return nil
		}
	}

	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}

	return field
}
