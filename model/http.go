package model

type ScoreMetadata struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Year   uint   `json:"year,omitempty"`
}

// ScoreDocument is the JSON form of a score file. Colors are "#rrggbb".
type ScoreDocument struct {
	Name      string         `json:"name,omitempty"`
	Options   Options        `json:"options"`
	Notes     []Note         `json:"notes"`
	OnColors  []string       `json:"onColors"`
	OffColors []string       `json:"offColors"`
	Derived   *Derived       `json:"derived,omitempty"`
	Warnings  []string       `json:"warnings,omitempty"`
	Metadata  *ScoreMetadata `json:"metadata,omitempty"`
}

type ScoreListing struct {
	Name     string         `json:"name"`
	Size     int64          `json:"size"`
	Metadata *ScoreMetadata `json:"metadata,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
