package main

import "embed"

//go:embed templates/*.html
var templateFS embed.FS

//go:embed translations/*.yaml
var translationFS embed.FS
