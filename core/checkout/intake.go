package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// FormIntake posts orders as multipart forms to a form-intake service such
// as Formspree and expects a JSON answer.
type FormIntake struct {
	URL      string
	Currency string
	Client   *http.Client
}

func NewFormIntake(url, currency string, timeout time.Duration) *FormIntake {
	return &FormIntake{
		URL:      url,
		Currency: currency,
		Client:   &http.Client{Timeout: timeout},
	}
}

type intakeResponse struct {
	OK    bool   `json:"ok"`
	Next  string `json:"next"`
	Error string `json:"error"`
}

func (fi *FormIntake) Submit(ctx context.Context, ord Order) error {
	body, contentType, err := fi.encode(ord)
	if err != nil {
		return fmt.Errorf("encoding order form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fi.URL, body)
	if err != nil {
		return fmt.Errorf("building intake request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := fi.Client.Do(req)
	if err != nil {
		return fmt.Errorf("posting order form: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("reading intake response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}

	if msg := intakeError(resp.Header.Get("Content-Type"), raw); msg != "" {
		return fmt.Errorf("intake answered %s: %s", resp.Status, msg)
	}
	return fmt.Errorf("intake answered %s", resp.Status)
}

// intakeError extracts the error message of a JSON answer. Other answers,
// and JSON that does not decode, carry none.
func intakeError(contentType string, raw []byte) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil || mt != "application/json" {
		return ""
	}

	var ir intakeResponse
	if err := json.Unmarshal(raw, &ir); err != nil {
		return ""
	}
	return ir.Error
}

// Fields lists the form fields of ord in submission order.
func (fi *FormIntake) Fields(ord Order) [][2]string {
	total := fi.money(ord.Total)
	fields := [][2]string{
		{"Order reference", ord.Reference},
		{"Order total", total},
		{"Order date", ord.PlacedAt.Format(time.RFC3339)},
		{"Item count", strconv.Itoa(ord.ItemCount) + " pcs."},
		{"Order sum", total},
	}

	for i, it := range ord.Items {
		prefix := "Item " + strconv.Itoa(i+1) + " - "

		name := it.Name
		if name == "" {
			name = "Untitled"
		}
		image := it.Image
		if image == "" {
			image = "No image"
		}

		fields = append(fields,
			[2]string{prefix + "Name", name},
			[2]string{prefix + "Unit price", fi.money(it.UnitPrice)},
			[2]string{prefix + "Quantity", strconv.Itoa(it.Quantity) + " pcs."},
			[2]string{prefix + "Total", fi.money(it.LineTotal)},
			[2]string{prefix + "Image", image},
		)
	}
	return fields
}

func (fi *FormIntake) encode(ord Order) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, f := range fi.Fields(ord) {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}

	return &buf, mw.FormDataContentType(), nil
}

func (fi *FormIntake) money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	if fi.Currency != "" {
		s += " " + fi.Currency
	}
	return s
}
