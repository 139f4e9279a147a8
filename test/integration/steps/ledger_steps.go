//go:build integration

package steps

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/cucumber/godog"
	"gorm.io/gorm"
)

func (t *testContext) iAmRegisteredAs(email string) error {
	_, err := t.callJSON(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"email":    email,
		"name":     "Test User",
		"password": testPassword,
	}, http.StatusCreated)
	return err
}

func (t *testContext) theLedgerCurrencyIs(currency string) error {
	_, err := t.callJSON(http.MethodPut, "/api/v1/ledger/currency", map[string]any{
		"currency": currency,
	}, http.StatusOK)
	return err
}

func (t *testContext) anAccountExistsWithBalance(name, balance string) error {
	_, err := t.callJSON(http.MethodPost, "/api/v1/accounts", map[string]any{
		"name":            name,
		"initial_balance": json.Number(balance),
	}, http.StatusCreated)
	return err
}

func (t *testContext) aFlowIsRecorded(kind, amount, account, remarks string) error {
	accountID, err := t.accountID(account)
	if err != nil {
		return err
	}
	_, err = t.callJSON(http.MethodPost, "/api/v1/transactions/flows", map[string]any{
		"type":       kind,
		"amount":     json.Number(amount),
		"account_id": accountID.String(),
		"remarks":    remarks,
	}, http.StatusCreated)
	return err
}

func (t *testContext) aTransferIsRecorded(amount, from, to string) error {
	fromID, err := t.accountID(from)
	if err != nil {
		return err
	}
	toID, err := t.accountID(to)
	if err != nil {
		return err
	}
	_, err = t.callJSON(http.MethodPost, "/api/v1/transactions/transfers", map[string]any{
		"amount":          json.Number(amount),
		"from_account_id": fromID.String(),
		"to_account_id":   toID.String(),
	}, http.StatusCreated)
	return err
}

func (t *testContext) theInsightModelAnswers(text string) error {
	t.insights.SetText(text)
	return nil
}

func (t *testContext) theInsightModelIsUnavailable() error {
	t.insights.SetAvailable(false)
	return nil
}

func (t *testContext) theEmailAPIRespondsWithStatus(status int) error {
	t.apiMock.SetResponse(-1, http.MethodPost, resendEmailPath, status, map[string]any{
		"name":    "application_error",
		"message": "mail provider rejected the request",
	})
	return nil
}

func (t *testContext) theEmailAPIShouldHaveReceivedRequests(count int) error {
	if got := len(t.apiMock.Requests(http.MethodPost, resendEmailPath)); got != count {
		return fmt.Errorf("expected %d email requests, got %d", count, got)
	}
	return nil
}

func (t *testContext) theEmailSentToShouldContain(recipient, text string) error {
	for _, request := range t.apiMock.Requests(http.MethodPost, resendEmailPath) {
		if !strings.Contains(fmt.Sprint(request.Body["to"]), recipient) {
			continue
		}
		html, _ := request.Body["html"].(string)
		plain, _ := request.Body["text"].(string)
		if strings.Contains(html, text) || strings.Contains(plain, text) {
			return nil
		}
		return fmt.Errorf("email to %s does not contain %q: %s", recipient, text, html)
	}
	return fmt.Errorf("no email was sent to %s", recipient)
}

func (t *testContext) theInsightModelShouldHaveReceivedTransactions(count int) error {
	if got := t.insights.LastTransactionCount(); got != count {
		return fmt.Errorf("expected the insight model to receive %d transactions, got %d", count, got)
	}
	return nil
}

func (t *testContext) countRows(table string, criteria map[string]any) (int, error) {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return 0, fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return 0, result.Error
	}
	return entitySlicePtr.Elem().Len(), nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	count, err := t.countRows(table, nil)
	if err != nil {
		return err
	}
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	raw, err := t.replacePlaceholders(content.Content)
	if err != nil {
		return err
	}
	var criteria map[string]any
	if err := json.Unmarshal([]byte(raw), &criteria); err != nil {
		return err
	}

	count, err := t.countRows(table, criteria)
	if err != nil {
		return err
	}
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}
