package db

import (
	"database/sql"
	"errors"
	"strings"
)

// likeEscape is portable across sqlite, mysql and postgres string literals.
const likeEscape = "!"

// escapeLikePattern escapes LIKE wildcards so user input matches literally
func escapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, likeEscape, likeEscape+likeEscape)
	s = strings.ReplaceAll(s, "%", likeEscape+"%")
	s = strings.ReplaceAll(s, "_", likeEscape+"_")
	return s
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
