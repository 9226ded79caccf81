package log

type Log struct{}
