package api

// LookupRequest asks for one or more positions to be checked
type LookupRequest struct {
	Tuning    map[int]string `json:"tuning,omitempty"` // defaults to the server tuning
	Positions []string       `json:"positions"`
	Mode      string         `json:"mode"`
	Key       string         `json:"key,omitempty"`
	Scale     string         `json:"scale,omitempty"`
	Root      string         `json:"root,omitempty"` // "string,fret", ChordTone mode only
}

// LookupResult is the outcome for one requested position
type LookupResult struct {
	Input    string `json:"input"`
	String   int    `json:"string,omitempty"`
	Fret     *int   `json:"fret,omitempty"` // set on success, 0 is an open string
	Note     string `json:"note,omitempty"`
	Interval string `json:"interval,omitempty"`
	Chord    string `json:"chord,omitempty"`
	Message  string `json:"message"`
	Error    string `json:"error,omitempty"`
}

type LookupResponse struct {
	Root    *LookupResult  `json:"root,omitempty"`
	Results []LookupResult `json:"results"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
