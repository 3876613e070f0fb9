package main

import "github.com/cleitonmarx/symbiont-ai-catalog/internal/app"

func main() {
	err := app.NewCatalogApp().
		Introspect(&app.ReportLoggerIntrospector{}).
		Run()
	if err != nil {
		panic(err)
	}
}
