// Package csvio converts between CSV and the ledger's typed values.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sheikh-saqib/payments-engine/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrMissingAmount = errors.New("csvio: missing amount")
	ErrMissingField  = errors.New("csvio: missing field")
)

// MalformedHandler is told about every dropped input line.
type MalformedHandler func(line int, err error)

// Reader decodes `type, client, tx, amount` records. Malformed records are
// dropped and never returned.
type Reader struct {
	r           *csv.Reader
	onMalformed MalformedHandler
	first       bool
}

type ReaderOption func(*Reader)

func WithMalformedHandler(h MalformedHandler) ReaderOption {
	return func(r *Reader) {
		r.onMalformed = h
	}
}

func NewReader(r io.Reader, opts ...ReaderOption) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	reader := &Reader{
		r:           cr,
		onMalformed: func(int, error) {},
		first:       true,
	}
	for _, opt := range opts {
		opt(reader)
	}
	return reader
}

// Read returns the next well-formed transaction, or io.EOF once the input
// is exhausted. Any other error comes from the underlying reader.
func (r *Reader) Read() (models.Transaction, error) {
	for {
		record, err := r.r.Read()
		if err == io.EOF {
			return models.Transaction{}, io.EOF
		}

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			r.onMalformed(parseErr.Line, err)
			continue
		}
		if err != nil {
			return models.Transaction{}, fmt.Errorf("csvio: read: %w", err)
		}
		if blank(record) {
			continue
		}
		line, _ := r.r.FieldPos(0)

		isHeader := r.first && strings.EqualFold(strings.TrimSpace(record[0]), "type")
		r.first = false
		if isHeader {
			continue
		}

		tx, err := parseRecord(record)
		if err != nil {
			r.onMalformed(line, err)
			continue
		}
		return tx, nil
	}
}

func parseRecord(record []string) (models.Transaction, error) {
	if len(record) < 3 {
		return models.Transaction{}, ErrMissingField
	}
	txType, err := models.ParseTransactionType(record[0])
	if err != nil {
		return models.Transaction{}, err
	}
	client, err := strconv.ParseUint(strings.TrimSpace(record[1]), 10, 16)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("client: %w", err)
	}
	id, err := strconv.ParseUint(strings.TrimSpace(record[2]), 10, 32)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("tx: %w", err)
	}

	tx := models.Transaction{
		Type:     txType,
		ID:       models.TxID(id),
		ClientID: models.ClientID(client),
	}
	if !txType.HasAmount() {
		return tx, nil
	}

	var raw string
	if len(record) > 3 {
		raw = strings.TrimSpace(record[3])
	}
	if raw == "" {
		return models.Transaction{}, ErrMissingAmount
	}
	tx.Amount, err = decimal.NewFromString(raw)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("amount: %w", err)
	}
	return tx, nil
}

func blank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
