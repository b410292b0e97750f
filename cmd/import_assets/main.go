// import_assets convierte el registro de activos heredado (CSV exportado desde Excel) en un script SQL
// idempotente: cada activo se inserta con ON CONFLICT (asset_code) DO NOTHING y, solo si se insertó,
// se agrega su evento ASSET_REGISTERED al historial.
//
// Uso: go run ./cmd/import_assets -in activos.csv [-out seed_assets.sql] [-encoding auto|utf8|latin1] [-by import]
// El CSV puede venir en UTF-8 o ISO-8859-1 (Excel en español) y separado por coma o punto y coma.
package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	in := flag.String("in", "activos.csv", "CSV de origen")
	out := flag.String("out", "seed_assets.sql", "script SQL de salida")
	enc := flag.String("encoding", "auto", "codificación del CSV: auto, utf8 o latin1")
	by := flag.String("by", "import", "valor de performed_by en el historial")
	flag.Parse()

	raw, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	text, err := decodeText(raw, *enc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar CSV: %v\n", err)
		os.Exit(1)
	}
	rows, skipped, err := parseAssets(text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Interpretar CSV: %v\n", err)
		os.Exit(1)
	}
	for _, s := range skipped {
		fmt.Fprintf(os.Stderr, "omitida: %s\n", s)
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := writeSeed(f, rows, *in, *by); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d activos, %d filas omitidas\n", *out, len(rows), len(skipped))
}
