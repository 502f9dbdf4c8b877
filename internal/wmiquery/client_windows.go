//go:build windows

package wmiquery

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

const (
	// sFalse is returned by CoInitializeEx when COM is already initialized
	// on the calling thread.
	sFalse = 0x00000001

	wbemFlagReturnImmediately = 0x10
	wbemFlagForwardOnly       = 0x20
)

// Client queries the local WMI service through the SWbemLocator scripting
// object. A Client holds no COM state between calls, so one value may be
// shared by every category collector.
type Client struct {
	namespace string
}

// NewClient returns a Client bound to namespace, or DefaultNamespace when
// namespace is empty.
func NewClient(namespace string) *Client {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Client{namespace: namespace}
}

// Query implements Querier. COM calls cannot be interrupted, so ctx is
// checked before connecting and before each row is fetched.
func (c *Client) Query(ctx context.Context, class string) ([]PropertyBag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bags, err := c.query(ctx, SelectAll(class))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrQuery, SelectAll(class), err)
	}
	return bags, nil
}

func (c *Client) query(ctx context.Context, wql string) ([]PropertyBag, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED); err != nil {
		var oleErr *ole.OleError
		if !errors.As(err, &oleErr) || (oleErr.Code() != ole.S_OK && oleErr.Code() != sFalse) {
			return nil, fmt.Errorf("initialize COM: %w", err)
		}
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject("WbemScripting.SWbemLocator")
	if err != nil {
		return nil, fmt.Errorf("create locator: %w", err)
	}
	defer unknown.Release()

	locator, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return nil, fmt.Errorf("locator dispatch: %w", err)
	}
	defer locator.Release()

	serviceRaw, err := oleutil.CallMethod(locator, "ConnectServer", nil, c.namespace)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", c.namespace, err)
	}
	service := serviceRaw.ToIDispatch()
	defer serviceRaw.Clear()

	// Semisynchronous forward-only enumeration: ExecQuery returns at once and
	// rows are fetched one by one, so ctx is observed between rows.
	resultRaw, err := oleutil.CallMethod(service, "ExecQuery", wql, "WQL", wbemFlagReturnImmediately|wbemFlagForwardOnly)
	if err != nil {
		return nil, fmt.Errorf("exec query: %w", err)
	}
	result := resultRaw.ToIDispatch()
	defer resultRaw.Clear()

	var bags []PropertyBag
	err = oleutil.ForEach(result, func(v *ole.VARIANT) error {
		defer v.Clear()
		if err := ctx.Err(); err != nil {
			return err
		}
		bag, err := readProperties(v.ToIDispatch())
		if err != nil {
			return fmt.Errorf("item %d: %w", len(bags), err)
		}
		bags = append(bags, bag)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bags, nil
}

// readProperties copies every property of one SWbemObject into a Bag so the
// row outlives the COM apartment it was read in.
func readProperties(item *ole.IDispatch) (Bag, error) {
	propsRaw, err := oleutil.GetProperty(item, "Properties_")
	if err != nil {
		return nil, fmt.Errorf("properties: %w", err)
	}
	defer propsRaw.Clear()

	bag := make(Bag)
	err = oleutil.ForEach(propsRaw.ToIDispatch(), func(v *ole.VARIANT) error {
		prop := v.ToIDispatch()

		nameVar, err := oleutil.GetProperty(prop, "Name")
		if err != nil {
			return err
		}
		name := nameVar.ToString()
		_ = nameVar.Clear()

		valueVar, err := oleutil.GetProperty(prop, "Value")
		if err != nil {
			return err
		}
		defer valueVar.Clear()

		if valueVar.VT&ole.VT_ARRAY != 0 {
			bag[name] = valueVar.ToArray().ToValueArray()
			return nil
		}
		bag[name] = valueVar.Value()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bag, nil
}
