package schemas

// DTOEnvelope wraps every successful response payload.
type DTOEnvelope struct {
	Dto interface{} `json:"dto"`
}

// MetadataDTO is a struct that represents the service metadata response
type MetadataDTO struct {
	ApiVersion string `json:"apiVersion"`
	ApiName    string `json:"apiName"`
}
