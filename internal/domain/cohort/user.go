package cohort

import "strings"

// PasswordNotCached marks accounts whose credentials live with the external
// authentication provider.
const PasswordNotCached = "not cached"

type User struct {
	ID         int64
	Username   string
	Auth       string
	ExternalID string
	FirstName  string
	LastName   string
	Country    string
	Password   string
}

type UserDefaults struct {
	Auth    string
	Country string
}

func NewUser(record SourceRecord, defaults UserDefaults) (User, error) {
	if strings.TrimSpace(record.UserLogin) == "" {
		return User{}, ErrInvalidUsername
	}

	return User{
		Username:   record.UserLogin,
		Auth:       defaults.Auth,
		ExternalID: record.UserExternalID,
		FirstName:  record.UserGivenName,
		LastName:   record.UserSurname,
		Country:    defaults.Country,
		Password:   PasswordNotCached,
	}, nil
}
