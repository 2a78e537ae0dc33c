package voucher

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/jung-kurt/gofpdf"
)

const (
	receiptWidthMM  = 80
	receiptHeightMM = 150
)

// WritePDF renders the ticket as a receipt-sized PDF.
func (v Voucher) WritePDF(w io.Writer) error {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: receiptWidthMM, Ht: receiptHeightMM},
	})
	pdf.SetMargins(6, 6, 6)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Courier", "B", 11)
	pdf.CellFormat(0, 6, tr("PARQUEADERO INTELIGENTE"), "B", 1, "C", false, 0, "")
	pdf.SetFont("Courier", "", 9)
	pdf.CellFormat(0, 6, tr("TICKET DE ENTRADA"), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	field := func(label, value string) {
		pdf.SetFont("Courier", "B", 9)
		pdf.Cell(pdf.GetStringWidth(tr(label))+1, 5, tr(label))
		pdf.SetFont("Courier", "", 9)
		pdf.Cell(0, 5, tr(value))
		pdf.Ln(5)
	}

	field("TICKET N°:", v.TicketNumber)
	field("PLACA:", v.Plate)
	field("CUBÍCULO ASIGNADO:", v.Cubicle)
	field("TIPO:", string(v.VehicleType))
	pdf.Ln(2)
	field("HORA INGRESO:", v.Entry())
	pdf.Ln(2)

	pdf.SetFont("Courier", "B", 10)
	pdf.CellFormat(0, 6, tr("TARIFAS"), "T", 1, "C", false, 0, "")
	field("1ª Hora:", v.FirstHour)
	field("Subsiguiente:", v.Subsequent+"/hr")
	pdf.Ln(4)

	pdf.SetFont("Courier", "", 8)
	pdf.CellFormat(0, 6, tr("¡GRACIAS POR SU VISITA!"), "T", 1, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return errors.Wrap(err, "render voucher pdf")
	}
	return nil
}

// SavePDF writes the ticket PDF into dir and returns the file path.
func (v Voucher) SavePDF(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create voucher dir")
	}
	var buf bytes.Buffer
	if err := v.WritePDF(&buf); err != nil {
		return "", err
	}
	path := filepath.Join(dir, v.Filename("pdf"))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", errors.Wrap(err, "write voucher pdf")
	}
	return path, nil
}
