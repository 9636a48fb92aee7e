package postgres

import (
	"errors"
	"net/url"
	"os"
)

// URLFromEnv assembles a connection url from POSTGRES_USER, POSTGRES_PASSWORD,
// DB_ADDR and POSTGRES_DB.
func URLFromEnv() (string, error) {
	return buildURL(os.Getenv)
}

func buildURL(getenv func(string) string) (string, error) {
	user := getenv("POSTGRES_USER")
	addr := getenv("DB_ADDR")
	db := getenv("POSTGRES_DB")
	if user == "" || addr == "" || db == "" {
		return "", errors.New("POSTGRES_USER, DB_ADDR and POSTGRES_DB must be set")
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   addr,
		Path:   "/" + db,
	}
	if password := getenv("POSTGRES_PASSWORD"); password != "" {
		u.User = url.UserPassword(user, password)
	} else {
		u.User = url.User(user)
	}
	return u.String(), nil
}
