package model

// Song is one entry of the static content library
type Song struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Lyrics string `json:"lyrics"`
}
