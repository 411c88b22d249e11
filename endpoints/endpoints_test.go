package endpoints_test

import (
	"testing"

	"github.com/jrsteele09/go-shop-admin/endpoints"
	"github.com/stretchr/testify/require"
)

func TestTemplates(t *testing.T) {
	require.Equal(t, "/products/abc", endpoints.Product("abc"))
	require.Equal(t, "/products/a%2Fb", endpoints.Product("a/b"))
	require.Equal(t, "/products/category/3", endpoints.ProductsByCategory(3))
	require.Equal(t, "/orders/12/status", endpoints.OrderStatus(12))
	require.Equal(t, "/categories/4", endpoints.Category(4))
	require.Equal(t, "/stock/s-1", endpoints.StockItem("s-1"))
	require.Equal(t, "/shop/1", endpoints.Shop("1"))
}
