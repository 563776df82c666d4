package cohort

// SourceRecord is one roster row: a learner belonging to a module group.
type SourceRecord struct {
	GroupExternalID string
	GroupCode       string
	GroupLabel      string
	UserExternalID  string
	UserSurname     string
	UserGivenName   string
	UserDN          string
	UserLogin       string
}

func (r SourceRecord) HasLogin() bool {
	return r.UserLogin != ""
}
