// Package avatax implementa el cliente REST v2 de AvaTax (createTransaction y ping).
package avatax

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/avatax-connector/internal/domain/tax"
	pkgavatax "github.com/jhoicas/avatax-connector/pkg/avatax"
)

const (
	pathCreateTransaction = "/api/v2/transactions/create"
	pathPing              = "/api/v2/utilities/ping"

	clientHeader = "avatax-connector; 1.0; Go REST; v2; "
	maxBody      = 1 << 20 // 1 MB
)

// RESTClient cliente HTTP del WS AvaTax. Usa net/http de la stdlib.
type RESTClient struct {
	httpClient *http.Client
	machine    string
}

// NewRESTClient construye el cliente. timeout <= 0 usa 30 s.
func NewRESTClient(timeout time.Duration, machine string) *RESTClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RESTClient{httpClient: &http.Client{Timeout: timeout}, machine: machine}
}

// ── Estructuras del request ──────────────────────────────────────────────────

type createTransactionModel struct {
	Type         string            `json:"type"`
	Code         string            `json:"code"`
	CompanyCode  string            `json:"companyCode"`
	Date         string            `json:"date"`
	CustomerCode string            `json:"customerCode"`
	CurrencyCode string            `json:"currencyCode,omitempty"`
	Commit       bool              `json:"commit"`
	Addresses    addressesModel    `json:"addresses"`
	Lines        []lineItemModel   `json:"lines"`
	TaxOverride  *taxOverrideModel `json:"taxOverride,omitempty"`
}

type addressesModel struct {
	ShipFrom addressModel `json:"shipFrom"`
	ShipTo   addressModel `json:"shipTo"`
}

type addressModel struct {
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

type lineItemModel struct {
	Number      string      `json:"number"`
	Quantity    json.Number `json:"quantity"`
	Amount      json.Number `json:"amount"`
	TaxCode     string      `json:"taxCode,omitempty"`
	ItemCode    string      `json:"itemCode,omitempty"`
	Description string      `json:"description,omitempty"`
	Discounted  bool        `json:"discounted"`
	Ref1        string      `json:"ref1,omitempty"`
	Ref2        string      `json:"ref2,omitempty"`
}

type taxOverrideModel struct {
	Type    string `json:"type"`
	TaxDate string `json:"taxDate"`
	Reason  string `json:"reason"`
}

// ── Estructuras de la respuesta ──────────────────────────────────────────────

type transactionModel struct {
	Code     string         `json:"code"`
	Status   string         `json:"status"`
	TotalTax json.Number    `json:"totalTax"`
	Messages []messageModel `json:"messages"`
}

type messageModel struct {
	Summary  string `json:"summary"`
	Details  string `json:"details"`
	Severity string `json:"severity"`
	RefersTo string `json:"refersTo"`
}

type errorResult struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details []struct {
			Code        string `json:"code"`
			Message     string `json:"message"`
			Description string `json:"description"`
			Severity    string `json:"severity"`
			RefersTo    string `json:"refersTo"`
		} `json:"details"`
	} `json:"error"`
}

// ── CreateTransaction ────────────────────────────────────────────────────────

// CreateTransaction registra el documento en AvaTax (commit=true).
// Un error devuelto significa que no hubo respuesta interpretable; una respuesta de
// error del WS se devuelve como SubmissionResult con HasError=true.
func (c *RESTClient) CreateTransaction(ctx context.Context, cred tax.Credentials, doc *tax.Document) (*tax.SubmissionResult, error) {
	if doc == nil {
		return nil, fmt.Errorf("avatax: documento nil")
	}
	payload, err := json.Marshal(toTransactionModel(doc))
	if err != nil {
		return nil, fmt.Errorf("avatax: serializar transacción: %w", err)
	}

	status, raw, err := c.do(ctx, cred, http.MethodPost, pathCreateTransaction, payload)
	if err != nil {
		return nil, err
	}

	if status >= 200 && status < 300 {
		var tm transactionModel
		if err := json.Unmarshal(raw, &tm); err != nil {
			return nil, fmt.Errorf("avatax: respuesta inválida (HTTP %d): %w", status, err)
		}
		total := decimal.Zero
		if tm.TotalTax != "" {
			if total, err = decimal.NewFromString(tm.TotalTax.String()); err != nil {
				return nil, fmt.Errorf("avatax: totalTax inválido %q: %w", tm.TotalTax, err)
			}
		}
		res := &tax.SubmissionResult{
			ResultCode:   pkgavatax.ResultSuccess,
			DocumentCode: tm.Code,
			TotalTax:     total,
			ActualResult: json.RawMessage(raw),
		}
		for _, m := range tm.Messages {
			res.Messages = append(res.Messages, tax.Message{Summary: m.Summary, Details: m.Details, Severity: m.Severity, RefersTo: m.RefersTo})
		}
		return res, nil
	}

	return parseErrorResult(status, raw, doc.Header.DocumentCode)
}

// Ping consulta /utilities/ping con las credenciales de la tienda.
func (c *RESTClient) Ping(ctx context.Context, cred tax.Credentials) (*tax.PingResponse, error) {
	status, raw, err := c.do(ctx, cred, http.MethodGet, pathPing, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		res, perr := parseErrorResult(status, raw, "")
		if perr != nil {
			return nil, perr
		}
		return nil, fmt.Errorf("%s", strings.Join(res.ErrorMessages(), "; "))
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		// el WS respondió texto plano: se reporta tal cual
		return nil, fmt.Errorf("%s", strings.Trim(string(trimmed), `"`))
	}
	var out tax.PingResponse
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, fmt.Errorf("avatax: respuesta de ping inválida: %w", err)
	}
	return &out, nil
}

// ── helpers privados ──────────────────────────────────────────────────────────

func (c *RESTClient) do(ctx context.Context, cred tax.Credentials, method, path string, body []byte) (int, []byte, error) {
	base := strings.TrimRight(cred.ServiceURL, "/")
	if base == "" {
		return 0, nil, fmt.Errorf("avatax: URL del servicio no configurada")
	}
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, base+path, rdr)
	if err != nil {
		return 0, nil, fmt.Errorf("avatax: crear request: %w", err)
	}
	req.SetBasicAuth(cred.AccountID, cred.LicenseKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Avalara-Client", clientHeader+c.machine)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil, fmt.Errorf("avatax: timeout o cancelación: %w", ctx.Err())
		}
		return 0, nil, fmt.Errorf("avatax: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return 0, nil, fmt.Errorf("avatax: leer respuesta: %w", err)
	}
	return resp.StatusCode, raw, nil
}

func parseErrorResult(status int, raw []byte, documentCode string) (*tax.SubmissionResult, error) {
	var er errorResult
	if err := json.Unmarshal(raw, &er); err != nil || (er.Error.Code == "" && er.Error.Message == "") {
		return nil, fmt.Errorf("avatax: HTTP %d: %s", status, strings.TrimSpace(string(raw)))
	}
	res := &tax.SubmissionResult{
		HasError:     true,
		ResultCode:   pkgavatax.ResultError,
		DocumentCode: documentCode,
		ActualResult: json.RawMessage(raw),
	}
	if len(er.Error.Details) == 0 {
		res.Messages = []tax.Message{{Summary: er.Error.Message, Details: er.Error.Code, Severity: pkgavatax.ResultError}}
		return res, nil
	}
	for _, d := range er.Error.Details {
		res.Messages = append(res.Messages, tax.Message{
			Summary:  d.Message,
			Details:  d.Description,
			Severity: d.Severity,
			RefersTo: d.RefersTo,
		})
	}
	return res, nil
}

func toTransactionModel(doc *tax.Document) createTransactionModel {
	h := doc.Header
	m := createTransactionModel{
		Type:         h.TransactionType,
		Code:         h.DocumentCode,
		CompanyCode:  h.CompanyCode,
		Date:         h.TransactionDate.Format(pkgavatax.ServiceDateFormat),
		CustomerCode: h.CustomerCode,
		CurrencyCode: h.CurrencyCode,
		Commit:       true,
		Addresses: addressesModel{
			ShipFrom: toAddressModel(h.ShipFrom),
			ShipTo:   toAddressModel(h.ShipTo),
		},
		Lines: make([]lineItemModel, 0, len(doc.Lines)),
	}
	taxDate := h.TaxCalculationDate.Format(pkgavatax.ServiceDateFormat)
	if !h.TaxCalculationDate.IsZero() && taxDate != m.Date {
		m.TaxOverride = &taxOverrideModel{Type: "TaxDate", TaxDate: taxDate, Reason: "Tax calculation date"}
	}
	for _, l := range doc.Lines {
		m.Lines = append(m.Lines, lineItemModel{
			Number:      fmt.Sprintf("%d", l.LineCode),
			Quantity:    json.Number(l.NumberOfItems.String()),
			Amount:      json.Number(l.LineAmount.String()),
			TaxCode:     l.TaxCode,
			ItemCode:    l.ItemCode,
			Description: l.Description,
			Discounted:  l.Discounted,
			Ref1:        l.Ref1,
			Ref2:        l.Ref2,
		})
	}
	return m
}

func toAddressModel(l tax.Location) addressModel {
	return addressModel{
		Line1:      l.Line1,
		Line2:      l.Line2,
		City:       l.City,
		Region:     l.Region,
		PostalCode: l.PostalCode,
		Country:    l.Country,
	}
}
