package credentials

import (
	"strings"

	"github.com/dmitrijs2005/loginsystem/internal/cryptox"
	"github.com/dmitrijs2005/loginsystem/internal/models"
)

// DefaultDelimiter separates the fields of a users file line.
const DefaultDelimiter = ";"

const fieldCount = 5

// ValidDelimiter reports whether d can separate users file fields: a single
// character that is neither a line break nor part of any hash encoding.
func ValidDelimiter(d string) bool {
	return len([]rune(d)) == 1 && !strings.ContainsAny(d, "\r\n") && !cryptox.ConflictsWithHashes(d)
}

func encodeLine(u models.User, delimiter string) string {
	return strings.Join(u.Fields(), delimiter)
}

// decodeLine parses one users file line. ok is false unless the line splits
// into exactly five fields.
func decodeLine(line, delimiter string) (u models.User, ok bool) {
	parts := strings.Split(line, delimiter)
	if len(parts) != fieldCount {
		return models.User{}, false
	}
	return models.User{
		FirstName:    parts[0],
		LastName:     parts[1],
		Username:     parts[2],
		PasswordHash: parts[3],
		Email:        parts[4],
	}, true
}

var fieldNames = [fieldCount]string{"first name", "last name", "username", "password", "email"}

// reservedField returns the name of the first value that contains the
// delimiter or a line break, or "". values are in persisted field order.
func reservedField(delimiter string, values ...string) string {
	for i, v := range values {
		if strings.Contains(v, delimiter) || strings.ContainsAny(v, "\r\n") {
			return fieldNames[i]
		}
	}
	return ""
}
