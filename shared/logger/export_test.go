package logger

var InitWith = initWith
