package source

import (
	"net"
	"net/url"
	"strconv"
)

// Columns names the eight roster columns, in projection order.
type Columns struct {
	GroupExternalID string
	GroupCode       string
	GroupLabel      string
	UserExternalID  string
	UserSurname     string
	UserGivenName   string
	UserDN          string
	UserLogin       string
}

func DefaultColumns() Columns {
	return Columns{
		GroupExternalID: "id_interne_aurion",
		GroupCode:       "Code_Module",
		GroupLabel:      "Libelle_Module",
		UserExternalID:  "id_Apprenant",
		UserSurname:     "Nom",
		UserGivenName:   "Prenom",
		UserDN:          "DN",
		UserLogin:       "login",
	}
}

func (c Columns) list() []string {
	return []string{
		c.GroupExternalID,
		c.GroupCode,
		c.GroupLabel,
		c.UserExternalID,
		c.UserSurname,
		c.UserGivenName,
		c.UserDN,
		c.UserLogin,
	}
}

type Config struct {
	// DSN, when set, is used as is and the connection fields below are ignored.
	DSN      string
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
	Schema   string
	Table    string
	Columns  Columns
}

func (c Config) ConnString() string {
	if c.DSN != "" {
		return c.DSN
	}

	port := c.Port
	if port == 0 {
		port = 5432
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(port)),
		Path:   "/" + c.Name,
	}
	if c.User != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}
	if c.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{c.SSLMode}}.Encode()
	}
	return u.String()
}
