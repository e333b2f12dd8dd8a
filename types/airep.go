package types

import "github.com/goccy/go-json"

// AirepFeed is the aviationweather.gov aircraft-report feed, a GeoJSON
// feature collection.
type AirepFeed struct {
	Features []AirepFeature `json:"features"`
}

type AirepFeature struct {
	Geometry   AirepGeometry   `json:"geometry"`
	Properties AirepProperties `json:"properties"`
	// Leftover from the upstream XML-to-JSON conversion; usually absent.
	Visibility *TextValue `json:"visibility_statute_mi,omitempty"`
}

// AirepGeometry carries the report coordinate. The pair is in GeoJSON
// order, [longitude, latitude]; pireps.Ingester swaps it before any
// geometry test.
type AirepGeometry struct {
	Coordinates []float64 `json:"coordinates"`
}

type AirepProperties struct {
	AirepType string      `json:"airepType"`
	ObsTime   string      `json:"obsTime"`
	RawOb     string      `json:"rawOb"`
	AcType    string      `json:"acType"`
	FltLvl    string      `json:"fltlvl"`
	Temp      json.Number `json:"temp"`
	Wdir      int         `json:"wdir"`
	Wspd      int         `json:"wspd"`
	CloudCvg1 string      `json:"cloudCvg1"`
	Bas1      int         `json:"Bas1"`
	Top1      int         `json:"Top1"`
	TbInt1    string      `json:"tbInt1"`
	TbFreq1   string      `json:"tbFreq1"`
	TbType1   string      `json:"tbType1"`
	IcgInt1   string      `json:"icgInt1"`
	IcgType1  string      `json:"icgType1"`
}

type TextValue struct {
	Text string `json:"_text"`
}
