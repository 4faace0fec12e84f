// Package fuzztests houses Go fuzz harnesses for the parse and reprint
// pipeline. They guard against panics and hangs on arbitrary input and check
// that reprinting an untouched tree gives the input back.
//
// Назначение: прогонять байты через лексер, парсер и принтер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
