package pkg

import (
	"bytes"

	"github.com/ledongthuc/pdf"
)

// ExtractPDFText 抽取 PDF 纯文本，喂给模型做简历点评
func ExtractPDFText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", err
	}
	return buf.String(), nil
}
