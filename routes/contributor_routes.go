package routes

import (
	"net/http"
)

func ContributorRoutes(h Handlers) []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/contributors", Handler: h.Contributors.GetContributors},
		{Method: http.MethodPost, Path: "/contributors", Handler: h.Contributors.CreateContributor, RequiresAuth: true},
	}
}

func CheckoutRoutes(h Handlers) []Route {
	return []Route{
		{Method: http.MethodPost, Path: "/create-checkout-session", Handler: h.Checkout.CreateCheckoutSession, RequiresAuth: true},
	}
}
