package repositories

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchPattern строит шаблон ILIKE "содержит". Символы % и _ из запроса ищутся буквально,
// экранирование обратной косой чертой в PostgreSQL работает без ESCAPE.
func searchPattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}
