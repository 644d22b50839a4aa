package handler

// APIV1Prefix is the base path of the public catalog API.
const APIV1Prefix = "/api/v1"

// Resource groups under APIV1Prefix.
const (
	productsPath   = "/products"
	categoriesPath = "/categories"
	countriesPath  = "/countries"
	statesPath     = "/states"
	healthPath     = "/health"
)
