package checkout_test

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	domorder "example.com/shareeghor/app/internal/domain/order"
	"example.com/shareeghor/app/internal/infra/catalog"
	"example.com/shareeghor/app/internal/infra/persistence/memory"
	cartuc "example.com/shareeghor/app/internal/usecase/cart"
	checkoutuc "example.com/shareeghor/app/internal/usecase/checkout"
)

type checkoutTestContext struct {
	kv        *memory.KVStore
	products  *catalog.Static
	carts     *cartuc.Service
	checkout  *checkoutuc.Service
	sessionID string
	order     *domorder.Order
	err       error
}

func (c *checkoutTestContext) reset() error {
	products, err := catalog.NewStatic()
	if err != nil {
		return err
	}
	c.kv = memory.NewKVStore()
	c.products = products
	c.wire()
	c.sessionID = ""
	c.order = nil
	c.err = nil
	return nil
}

func (c *checkoutTestContext) wire() {
	c.carts = cartuc.NewService(c.kv, c.products)
	c.checkout = checkoutuc.NewService(c.carts, c.kv)
}

func (c *checkoutTestContext) aFreshGuestSession(id string) error {
	c.sessionID = id
	return nil
}

func (c *checkoutTestContext) iAddProduct(id int64) error {
	_, c.err = c.carts.AddProduct(context.Background(), c.sessionID, id, "", "")
	return nil
}

func (c *checkoutTestContext) iAddProductInSizeAndColor(id int64, size, color string) error {
	_, c.err = c.carts.AddProduct(context.Background(), c.sessionID, id, size, color)
	return c.err
}

func (c *checkoutTestContext) iSetTheQuantity(id int64, size, color string, quantity int64) error {
	_, err := c.carts.UpdateQuantity(context.Background(), c.sessionID, id, size, color, quantity)
	return err
}

func (c *checkoutTestContext) theSessionIsReloaded() error {
	c.wire()
	return nil
}

func (c *checkoutTestContext) theCartHasLinesWithItems(lines int, items int64) error {
	view, err := c.carts.Get(context.Background(), c.sessionID)
	if err != nil {
		return err
	}
	if len(view.Lines) != lines {
		return fmt.Errorf("expected %d lines, got %d", lines, len(view.Lines))
	}
	if view.ItemCount != items {
		return fmt.Errorf("expected %d items, got %d", items, view.ItemCount)
	}
	return nil
}

func (c *checkoutTestContext) theCartTotalIs(total float64) error {
	view, err := c.carts.Get(context.Background(), c.sessionID)
	if err != nil {
		return err
	}
	if view.Total != total {
		return fmt.Errorf("expected total %v, got %v", total, view.Total)
	}
	return nil
}

func (c *checkoutTestContext) theDeliveryChargeToIs(city string, charge float64) error {
	summary, err := c.checkout.Quote(context.Background(), c.sessionID, city)
	if err != nil {
		return err
	}
	if summary.DeliveryCharge != charge {
		return fmt.Errorf("expected delivery charge %v to %s, got %v", charge, city, summary.DeliveryCharge)
	}
	return nil
}

func (c *checkoutTestContext) iPlaceACashOnDeliveryOrderTo(city string) error {
	c.order, c.err = c.checkout.PlaceOrder(context.Background(), c.sessionID, checkoutuc.PlaceOrderRequest{
		Shipping: domorder.ShippingInfo{
			FullName: "Farzana Akter",
			Email:    "farzana@example.com",
			Phone:    "01812345678",
			Address:  "Flat 3B, Lake Road",
			City:     city,
		},
		PaymentMethod: domorder.PaymentCOD,
	})
	return nil
}

func (c *checkoutTestContext) theOrderIsPlacedWithTotal(total float64) error {
	if c.err != nil {
		return fmt.Errorf("expected order but got error: %v", c.err)
	}
	if c.order.Total != total {
		return fmt.Errorf("expected order total %v, got %v", total, c.order.Total)
	}
	return nil
}

func (c *checkoutTestContext) theOrderHoldsQuantities(list string) error {
	if c.order == nil {
		return errors.New("no order placed")
	}
	want := strings.Split(list, ",")
	if len(want) != len(c.order.Items) {
		return fmt.Errorf("expected %d lines, got %d", len(want), len(c.order.Items))
	}
	for i, w := range want {
		q, err := strconv.ParseInt(strings.TrimSpace(w), 10, 64)
		if err != nil {
			return err
		}
		if c.order.Items[i].Quantity != q {
			return fmt.Errorf("line %d: expected quantity %d, got %d", i, q, c.order.Items[i].Quantity)
		}
	}
	return nil
}

func (c *checkoutTestContext) theOrderTrackingIDStartsWith(prefix string) error {
	if c.order == nil {
		return errors.New("no order placed")
	}
	if !strings.HasPrefix(c.order.TrackingID, prefix) {
		return fmt.Errorf("expected tracking id with prefix %q, got %q", prefix, c.order.TrackingID)
	}
	return nil
}

func (c *checkoutTestContext) theLastOrderMatchesThePlacedOrder() error {
	last, err := c.checkout.LastOrder(context.Background(), c.sessionID)
	if err != nil {
		return err
	}
	if last.TrackingID != c.order.TrackingID {
		return fmt.Errorf("expected last order %s, got %s", c.order.TrackingID, last.TrackingID)
	}
	return nil
}

func (c *checkoutTestContext) theRequestFailsWith(substring string) error {
	if c.err == nil {
		return errors.New("expected an error but the request succeeded")
	}
	if !strings.Contains(c.err.Error(), substring) {
		return fmt.Errorf("expected error containing %q, got %q", substring, c.err.Error())
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &checkoutTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, tc.reset()
	})

	ctx.Step(`^a fresh guest session "([^"]*)"$`, tc.aFreshGuestSession)

	ctx.Step(`^I add product (\d+)$`, tc.iAddProduct)
	ctx.Step(`^I add product (\d+) in size "([^"]*)" and color "([^"]*)"$`, tc.iAddProductInSizeAndColor)
	ctx.Step(`^I set the quantity of product (\d+) in size "([^"]*)" and color "([^"]*)" to (\d+)$`, tc.iSetTheQuantity)
	ctx.Step(`^the session is reloaded$`, tc.theSessionIsReloaded)
	ctx.Step(`^I place a cash on delivery order to "([^"]*)"$`, tc.iPlaceACashOnDeliveryOrderTo)

	ctx.Step(`^the cart has (\d+) lines? with (\d+) items?$`, tc.theCartHasLinesWithItems)
	ctx.Step(`^the cart total is (\d+(?:\.\d+)?)$`, tc.theCartTotalIs)
	ctx.Step(`^the delivery charge to "([^"]*)" is (\d+)$`, tc.theDeliveryChargeToIs)
	ctx.Step(`^the order is placed with total (\d+(?:\.\d+)?)$`, tc.theOrderIsPlacedWithTotal)
	ctx.Step(`^the order holds quantities "([^"]*)"$`, tc.theOrderHoldsQuantities)
	ctx.Step(`^the order tracking id starts with "([^"]*)"$`, tc.theOrderTrackingIDStartsWith)
	ctx.Step(`^the last order matches the placed order$`, tc.theLastOrderMatchesThePlacedOrder)
	ctx.Step(`^the request fails with "([^"]*)"$`, tc.theRequestFailsWith)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
