package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Activos-api/internal/domain/entity"
	"github.com/jhoicas/Activos-api/internal/domain/lifecycle"
)

// headerAliases nombres de columna aceptados (en minúsculas, sin espacios extremos).
var headerAliases = map[string]string{
	"asset_code": "asset_code", "asset code": "asset_code", "codigo": "asset_code", "código": "asset_code", "placa": "asset_code",
	"serial_no": "serial_no", "serial": "serial_no", "serie": "serial_no", "serial no": "serial_no",
	"make": "make", "marca": "make",
	"model": "model", "modelo": "model",
	"po_no": "po_no", "po no": "po_no", "orden de compra": "po_no",
	"invoice_no": "invoice_no", "invoice no": "invoice_no", "factura": "invoice_no",
	"invoice_date": "invoice_date", "invoice date": "invoice_date", "fecha factura": "invoice_date",
	"amount": "amount", "valor": "amount", "costo": "amount",
	"vendor": "vendor", "proveedor": "vendor",
	"warranty_years": "warranty_years", "warranty": "warranty_years", "garantia": "warranty_years", "garantía": "warranty_years",
	"warranty_start": "warranty_start", "inicio garantia": "warranty_start", "inicio garantía": "warranty_start",
	"warranty_end": "warranty_end", "fin garantia": "warranty_end", "fin garantía": "warranty_end",
}

var dateLayouts = []string{"2006-01-02", "02/01/2006", "2/1/2006", "02-01-2006"}

// decodeText convierte el CSV a UTF-8. "auto" usa Latin-1 solo si el contenido no es UTF-8 válido.
func decodeText(raw []byte, encoding string) (string, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	switch strings.ToLower(encoding) {
	case "utf8", "utf-8":
		return string(raw), nil
	case "latin1", "iso-8859-1":
	case "auto", "":
		if utf8.Valid(raw) {
			return string(raw), nil
		}
	default:
		return "", fmt.Errorf("codificación no soportada: %s", encoding)
	}
	out, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// parseAssets lee el CSV. Las filas sin código o serie, o con valores inválidos, se omiten y se reportan.
// Un código repetido dentro del archivo conserva la primera aparición.
func parseAssets(text string) ([]*entity.Asset, []string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = detectComma(text)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("encabezado: %w", err)
	}
	cols := map[string]int{}
	for i, h := range header {
		if key, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			cols[key] = i
		}
	}
	for _, req := range []string{"asset_code", "serial_no"} {
		if _, ok := cols[req]; !ok {
			return nil, nil, fmt.Errorf("falta la columna %s", req)
		}
	}

	var (
		assets  []*entity.Asset
		skipped []string
		seen    = map[string]bool{}
		line    = 1
	)
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, nil, fmt.Errorf("línea %d: %w", line, err)
		}
		get := func(key string) string {
			i, ok := cols[key]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		a, err := toAsset(get)
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("línea %d: %v", line, err))
			continue
		}
		if seen[a.AssetCode] {
			skipped = append(skipped, fmt.Sprintf("línea %d: código %s repetido", line, a.AssetCode))
			continue
		}
		seen[a.AssetCode] = true
		assets = append(assets, a)
	}
	return assets, skipped, nil
}

func toAsset(get func(string) string) (*entity.Asset, error) {
	a := &entity.Asset{
		ID:        uuid.New().String(),
		AssetCode: get("asset_code"),
		SerialNo:  get("serial_no"),
		Make:      get("make"),
		Model:     get("model"),
		PONo:      get("po_no"),
		InvoiceNo: get("invoice_no"),
		Vendor:    get("vendor"),
		Status:    entity.AssetStatusInStock,
	}
	if a.AssetCode == "" {
		return nil, fmt.Errorf("código vacío")
	}
	if a.SerialNo == "" {
		return nil, fmt.Errorf("serie vacía")
	}
	var err error
	if a.Amount, err = parseAmount(get("amount")); err != nil {
		return nil, err
	}
	if v := get("warranty_years"); v != "" {
		if a.WarrantyYears, err = strconv.Atoi(v); err != nil || a.WarrantyYears < 0 {
			return nil, fmt.Errorf("años de garantía inválidos %q", v)
		}
	}
	for _, d := range []struct {
		key string
		dst **time.Time
	}{
		{"invoice_date", &a.InvoiceDate},
		{"warranty_start", &a.WarrantyStart},
		{"warranty_end", &a.WarrantyEnd},
	} {
		if *d.dst, err = parseDate(get(d.key)); err != nil {
			return nil, err
		}
	}
	if a.WarrantyStart == nil {
		a.WarrantyStart = a.InvoiceDate
	}
	if a.WarrantyEnd == nil {
		a.WarrantyEnd = lifecycle.WarrantyEnd(a.WarrantyStart, a.WarrantyYears)
	}
	return a, nil
}

// parseAmount acepta "3500000", "3.500.000,50" y "3,500,000.50".
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return decimal.Zero, nil
	}
	lastDot, lastComma := strings.LastIndex(s, "."), strings.LastIndex(s, ",")
	switch {
	case lastComma > lastDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case lastDot > lastComma && lastComma >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, fmt.Errorf("valor inválido %q", s)
	}
	return d, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("fecha inválida %q", s)
}

func detectComma(text string) rune {
	first, _, _ := strings.Cut(text, "\n")
	if strings.Count(first, ";") > strings.Count(first, ",") {
		return ';'
	}
	return ','
}

// writeSeed escribe un INSERT por activo; el historial solo se inserta si el activo era nuevo.
func writeSeed(w io.Writer, assets []*entity.Asset, source, performedBy string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "-- Activos importados desde %s\n", source)
	b.WriteString("-- Idempotente: los códigos existentes se omiten.\n\n")
	b.WriteString("BEGIN;\n\n")
	for _, a := range assets {
		b.WriteString("WITH ins AS (\n")
		b.WriteString("  INSERT INTO assets (id, asset_code, make, model, serial_no, po_no, invoice_no, invoice_date, amount, vendor, warranty_years, warranty_start, warranty_end, status)\n")
		fmt.Fprintf(&b, "  VALUES (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %d, %s, %s, %s)\n",
			quote(a.ID), quote(a.AssetCode), quote(a.Make), quote(a.Model), quote(a.SerialNo),
			quote(a.PONo), quote(a.InvoiceNo), date(a.InvoiceDate), a.Amount.StringFixed(2), quote(a.Vendor),
			a.WarrantyYears, date(a.WarrantyStart), date(a.WarrantyEnd), quote(string(a.Status)))
		b.WriteString("  ON CONFLICT (asset_code) DO NOTHING\n")
		b.WriteString("  RETURNING id, asset_code\n)\n")
		b.WriteString("INSERT INTO asset_history (id, event_type, asset_code, asset_id, description, performed_by)\n")
		fmt.Fprintf(&b, "SELECT %s, %s, asset_code, id, %s, %s FROM ins;\n\n",
			quote(uuid.New().String()), quote(string(entity.EventAssetRegistered)),
			quote("Activo "+a.AssetCode+" importado desde "+source), quote(performedBy))
	}
	b.WriteString("COMMIT;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func date(t *time.Time) string {
	if t == nil {
		return "NULL"
	}
	return quote(t.Format("2006-01-02"))
}
