// Package docs provides the OpenAPI documentation for the NutriScan server.
//
// NutriScan API
//
//	@title			NutriScan API
//	@version		1.0
//	@description	Ingredient label scanning: structured nutritional assessments and healthier alternatives.
//
//	@contact.name	API Support
//	@contact.url	https://github.com/Aayushman-oss/nutriscan-ai
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/nutriscan/serve.go -o . --outputTypes go --parseInternal
