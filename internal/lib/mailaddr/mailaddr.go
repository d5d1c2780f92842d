// Package mailaddr содержит нормализацию адресов электронной почты.
//
// Клиенты могут передавать только локальную часть адреса, поэтому
// перед любым поиском или сохранением адрес приводится к полной форме.
package mailaddr

import "strings"

// Normalize дополняет адрес доменом "@gmail.com", если в нём нет символа "@".
// Адрес с доменом возвращается без изменений.
func Normalize(email string) string {
	if !strings.Contains(email, "@") {
		return email + "@gmail.com"
	}
	return email
}
