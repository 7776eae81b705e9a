package importcsv

// Template is a downloadable CSV model for a supported import type.
// Rendered bytes are stable so users can diff a re-download against
// what they filled in.
type Template struct {
	Filename string
	Header   []string
	Example  []string
}

// Templates for each supported import type. Headers are in Portuguese
// because they are what end users see in their spreadsheet tool.
var (
	HospitalTemplate = Template{
		Filename: "modelo_hospitais.csv",
		Header:   []string{"Nome", "Endereço"},
		Example:  []string{"Hospital Municipal de Exemplo", "Rua das Flores, 123 - Centro"},
	}

	PatientTemplate = Template{
		Filename: "modelo_pacientes.csv",
		Header:   []string{"Nome Completo", "Número do Cartão SUS", "Data de Nascimento"},
		Example:  []string{"Maria da Silva", "123456789012345", "1980-05-20"},
	}
)

// utf8BOM makes spreadsheet tools open the file as UTF-8
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Render produces the template file bytes: UTF-8 BOM, header row, one
// example row, CRLF line endings for spreadsheet compatibility.
func (t Template) Render() []byte {
	out := make([]byte, 0, 128)
	out = append(out, utf8BOM...)
	out = appendRecord(out, t.Header)
	out = appendRecord(out, t.Example)
	return out
}

// RequiredHeaders returns the headers an uploaded file must carry
func (t Template) RequiredHeaders() []string {
	return t.Header
}

func appendRecord(out []byte, fields []string) []byte {
	for i, f := range fields {
		if i > 0 {
			out = append(out, ',')
		}
		out = appendField(out, f)
	}
	return append(out, '\r', '\n')
}

func appendField(out []byte, f string) []byte {
	needsQuote := false
	for _, r := range f {
		if r == ',' || r == '"' || r == '\n' || r == '\r' {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return append(out, f...)
	}
	out = append(out, '"')
	for _, r := range f {
		if r == '"' {
			out = append(out, '"', '"')
			continue
		}
		out = append(out, string(r)...)
	}
	return append(out, '"')
}
