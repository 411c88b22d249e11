// Package endpoints lists the backend paths consumed by the admin client,
// relative to the configured base URL.
package endpoints

import (
	"fmt"
	"net/url"
	"strconv"
)

const (
	AuthLogin    = "/auth/login"
	AuthLogout   = "/auth/logout"
	AuthRefresh  = "/auth/refresh"
	AuthRegister = "/auth/register"

	OTPSend   = "/otp/send"
	OTPVerify = "/otp/verify"

	Shops       = "/shop"
	Products    = "/products"
	Orders      = "/orders"
	Stock       = "/stock"
	StockAdd    = "/stock/add"
	StockRemove = "/stock/remove"
	Categories  = "/categories"
)

func Shop(id string) string {
	return Shops + "/" + url.PathEscape(id)
}

func Product(id string) string {
	return Products + "/" + url.PathEscape(id)
}

func ProductsByCategory(categoryID int) string {
	return fmt.Sprintf("%s/category/%d", Products, categoryID)
}

func Order(id int) string {
	return Orders + "/" + strconv.Itoa(id)
}

func OrderStatus(id int) string {
	return Order(id) + "/status"
}

func StockItem(id string) string {
	return Stock + "/" + url.PathEscape(id)
}

func Category(id int) string {
	return Categories + "/" + strconv.Itoa(id)
}
