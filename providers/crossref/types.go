package crossref

// WorksResponse ist die Antwort der Crossref works-API.
type WorksResponse struct {
	Status  string `json:"status"`
	Message struct {
		Items []Item `json:"items"`
	} `json:"message"`
}

// Item ist ein einzelnes Work aus der Crossref-Antwort.
type Item struct {
	Title          []string   `json:"title"`
	Author         []Author   `json:"author"`
	ContainerTitle []string   `json:"container-title"`
	Published      *DateParts `json:"published"`
	Issued         *DateParts `json:"issued"`
	Abstract       string     `json:"abstract"`
	DOI            string     `json:"DOI"`
	URL            string     `json:"URL"`
}

// Author ist ein strukturierter Autorenname (given/family).
type Author struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

// DateParts ist Crossrefs verschachteltes Datumsformat:
// [[Jahr, Monat, Tag]], wobei Monat und Tag fehlen können.
type DateParts struct {
	DateParts [][]int `json:"date-parts"`
}
