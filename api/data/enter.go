package data

type Data struct{}
