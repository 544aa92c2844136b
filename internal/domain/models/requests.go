package models

// Requests for the HTTP endpoints. Defined in domain for consistency and reuse.

type CoordinatesRequest struct {
	Lat float64 `query:"lat" json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `query:"lon" json:"lon" validate:"gte=-180,lte=180"`
}

type ForecastRequest struct {
	Lat  float64 `query:"lat" json:"lat" validate:"gte=-90,lte=90"`
	Lon  float64 `query:"lon" json:"lon" validate:"gte=-180,lte=180"`
	Days int     `query:"days" json:"days" default:"5" validate:"gte=1,lte=5"`
}
