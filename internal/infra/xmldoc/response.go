package xmldoc

import (
	"encoding/xml"

	"github.com/andresmx/sentimsg/internal/application/analysis"
)

// Report document vocabulary, rooted at lista_respuestas.
type ResponseList struct {
	XMLName   xml.Name   `xml:"lista_respuestas"`
	Responses []Response `xml:"respuesta"`
}

type Response struct {
	Date     string     `xml:"fecha"`
	Messages CountBlock `xml:"mensajes"`
	Analysis Analysis   `xml:"analisis"`
}

type CountBlock struct {
	Total    int `xml:"total"`
	Positive int `xml:"positivos"`
	Negative int `xml:"negativos"`
	Neutral  int `xml:"neutros"`
}

type Analysis struct {
	Companies []CompanyBlock `xml:"empresa"`
}

type CompanyBlock struct {
	Name     string      `xml:"nombre,attr"`
	Messages CountBlock  `xml:"mensajes"`
	Services ServiceList `xml:"servicios"`
}

type ServiceList struct {
	Services []ServiceBlock `xml:"servicio"`
}

type ServiceBlock struct {
	Name     string     `xml:"nombre,attr"`
	Messages CountBlock `xml:"mensajes"`
}

// FromReport maps the aggregated report onto the wire vocabulary, keeping
// the traversal order the aggregator produced.
func FromReport(rep analysis.Report) ResponseList {
	resp := Response{
		Date:     rep.Date,
		Messages: toBlock(rep.Totals),
	}
	for _, co := range rep.Companies {
		block := CompanyBlock{Name: co.Name, Messages: toBlock(co.Counts)}
		for _, sv := range co.Services {
			block.Services.Services = append(block.Services.Services, ServiceBlock{
				Name:     sv.Name,
				Messages: toBlock(sv.Counts),
			})
		}
		resp.Analysis.Companies = append(resp.Analysis.Companies, block)
	}
	return ResponseList{Responses: []Response{resp}}
}

func toBlock(c analysis.Counts) CountBlock {
	return CountBlock{
		Total:    c.Total,
		Positive: c.Positive,
		Negative: c.Negative,
		Neutral:  c.Neutral,
	}
}

// EncodeResponseList renders the report document with an XML header.
func EncodeResponseList(list ResponseList) ([]byte, error) {
	body, err := xml.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
