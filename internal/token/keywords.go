package token

var keywords = map[string]Kind{
	"and": KwAnd,
	"or":  KwOr,
	"div": KwDiv,
	"mod": KwMod,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые — препроцессор уже привёл AND/OR к lowercase.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
