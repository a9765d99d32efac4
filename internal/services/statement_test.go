package services

import (
	"testing"
	"time"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "1234", want: 123400},
		{in: "-2500.5", want: -250050},
		{in: "1,234.56", want: 123456},
		{in: "1.234,56", want: 123456},
		{in: "-0,50", want: -50},
		{in: "$ 12", want: 1200},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "1.234", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseAmount(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseAmount(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseStatement(t *testing.T) {
	t.Run("semicolon_without_header", func(t *testing.T) {
		rows, err := parseStatement([]byte("01/03/2024;Pago Luz;-1.500,00\n\n02/03/2024;Cobro;300\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(rows))
		}
		if !rows[0].Date.Equal(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)) || rows[0].Amount != -150000 {
			t.Errorf("unexpected first row %+v", rows[0])
		}
	})

	t.Run("spanish_header_and_bom", func(t *testing.T) {
		rows, err := parseStatement([]byte("\xef\xbb\xbffecha,descripcion,monto\n2024-03-01,X,1\n"))
		if err != nil || len(rows) != 1 {
			t.Fatalf("expected one row, got %d (%v)", len(rows), err)
		}
	})

	t.Run("header_only", func(t *testing.T) {
		if _, err := parseStatement([]byte("date,description,amount\n")); err == nil {
			t.Fatal("expected error for file without rows")
		}
	})

	t.Run("missing_columns", func(t *testing.T) {
		if _, err := parseStatement([]byte("2024-03-01,X\n")); err == nil {
			t.Fatal("expected error for short row")
		}
	})
}
