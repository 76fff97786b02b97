package entity

import "strconv"

// Estate record JSON keys, in presentation order.
const (
	KeyTitle        = "title"
	KeyDocumentDate = "document_date"
	KeyClientName   = "client_name"
	KeyGoverningLaw = "governing_law"
	KeyAgentName    = "agent_name"
	KeySummary      = "summary"
	KeyPageCount    = "page_count"
)

// EstateKeys lists every key an estate extraction must produce.
var EstateKeys = []string{
	KeyTitle,
	KeyDocumentDate,
	KeyClientName,
	KeyGoverningLaw,
	KeyAgentName,
	KeySummary,
	KeyPageCount,
}

// EstateRecord represents the fields extracted from a power-of-attorney document.
type EstateRecord struct {
	Title        string `json:"title"`
	DocumentDate string `json:"document_date"`
	ClientName   string `json:"client_name"`
	GoverningLaw string `json:"governing_law"`
	AgentName    string `json:"agent_name"`
	Summary      string `json:"summary"`
	PageCount    int    `json:"page_count"`
}

// Rows returns label/value pairs for table rendering, summary excluded.
func (r EstateRecord) Rows() [][2]string {
	return [][2]string{
		{"Title", r.Title},
		{"Document Date", r.DocumentDate},
		{"Client Name", r.ClientName},
		{"Governing Law (state)", r.GoverningLaw},
		{"Named agent/attorney-in-fact", r.AgentName},
		{"Number of Pages", strconv.Itoa(r.PageCount)},
	}
}
