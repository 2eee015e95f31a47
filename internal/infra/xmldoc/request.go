package xmldoc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/andresmx/sentimsg/internal/application/analysis"
	"github.com/andresmx/sentimsg/internal/domain/dictionaries"
	"github.com/andresmx/sentimsg/internal/domain/messages"
)

// Ingest document vocabulary. The elements are matched wherever they appear
// in the tree, so wrapper elements around the dictionaries or the message
// list do not matter.
type wordList struct {
	Words []string `xml:"palabra"`
}

type companyElem struct {
	Name     string        `xml:"nombre"`
	Services []serviceElem `xml:"servicio"`
}

type serviceElem struct {
	Name    string   `xml:"nombre,attr"`
	Aliases []string `xml:"alias"`
}

// ParseAnalysisRequest decodes one ingest document into the per-run
// dictionaries and raw message blobs. Any XML-level failure is reported as
// messages.ErrMalformedDocument; missing keyword lists yield empty sets.
func ParseAnalysisRequest(data []byte) (analysis.IngestCommand, error) {
	var (
		positive []string
		negative []string
		catalog  dictionaries.Catalog
		raws     []string
	)

	dec := xml.NewDecoder(bytes.NewReader(data))
	sawRoot := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return analysis.IngestCommand{}, fmt.Errorf("%w: %v", messages.ErrMalformedDocument, err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		sawRoot = true

		switch se.Name.Local {
		case "sentimientos_positivos":
			var list wordList
			if err := dec.DecodeElement(&list, &se); err != nil {
				return analysis.IngestCommand{}, fmt.Errorf("%w: %v", messages.ErrMalformedDocument, err)
			}
			positive = append(positive, list.Words...)
		case "sentimientos_negativos":
			var list wordList
			if err := dec.DecodeElement(&list, &se); err != nil {
				return analysis.IngestCommand{}, fmt.Errorf("%w: %v", messages.ErrMalformedDocument, err)
			}
			negative = append(negative, list.Words...)
		case "empresa":
			var el companyElem
			if err := dec.DecodeElement(&el, &se); err != nil {
				return analysis.IngestCommand{}, fmt.Errorf("%w: %v", messages.ErrMalformedDocument, err)
			}
			if co, ok := toCompany(el); ok {
				catalog = append(catalog, co)
			}
		case "mensaje":
			var body string
			if err := dec.DecodeElement(&body, &se); err != nil {
				return analysis.IngestCommand{}, fmt.Errorf("%w: %v", messages.ErrMalformedDocument, err)
			}
			raws = append(raws, strings.TrimSpace(body))
		}
	}
	if !sawRoot {
		return analysis.IngestCommand{}, fmt.Errorf("%w: no root element", messages.ErrMalformedDocument)
	}

	return analysis.IngestCommand{
		Keywords: dictionaries.NewKeywordSet(positive, negative),
		Catalog:  catalog,
		Messages: raws,
		Document: data,
	}, nil
}

// toCompany normalizes one empresa element. Companies without a name are
// dropped (the catalog invariant requires non-empty names); service names
// default to the unknown sentinel and aliases are lowercased.
func toCompany(el companyElem) (dictionaries.Company, bool) {
	name := strings.TrimSpace(el.Name)
	if name == "" {
		return dictionaries.Company{}, false
	}
	co := dictionaries.Company{Name: name}
	for _, sv := range el.Services {
		svName := strings.TrimSpace(sv.Name)
		if svName == "" || strings.EqualFold(svName, "desconocido") {
			svName = messages.ServiceUnknown
		}
		aliases := make([]string, 0, len(sv.Aliases))
		for _, a := range sv.Aliases {
			a = strings.ToLower(strings.TrimSpace(a))
			if a != "" {
				aliases = append(aliases, a)
			}
		}
		co.Services = append(co.Services, dictionaries.Service{Name: svName, Aliases: aliases})
	}
	return co, true
}
