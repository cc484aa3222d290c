package request

// SubmitIndividualJob carries the source URLs of an individual job.
type SubmitIndividualJob struct {
	URLs []string `json:"urls" validate:"required,min=1,max=12,dive,url"`
}

// ShareJob toggles the public flag of a completed job. The pointer keeps
// `{"is_public": false}` distinguishable from a missing field.
type ShareJob struct {
	IsPublic *bool `json:"is_public" validate:"required"`
}
