// Package fuzztests houses Go fuzz harnesses that exercise the tally
// pipeline (source -> lexer -> parser -> interpreter). Its goal is to smoke
// test robustness and guard against panics on arbitrary inputs.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер, парсер
// и интерпретатор, проверяя инварианты span'ов из internal/testkit.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
