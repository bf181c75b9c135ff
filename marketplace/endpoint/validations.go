package endpoint

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/curio/marketplace/lib/errors"
	"github.com/curio/marketplace/marketplace/model"
)

// ValidatePrice validates a price (a strictly positive integer amount of the
// pool's currency mint base unit).
func ValidatePrice(
	ctx context.Context,
	price string,
) (*int64, error) {
	p, err := strconv.ParseInt(price, 10, 64)
	if err != nil || p <= 0 || p > model.MaxSalePrice {
		return nil, errors.Trace(errors.NewUserErrorf(err,
			400, "invalid_price",
			"The price provided is invalid: %s. Prices must be strictly "+
				"positive integers no larger than %d.",
			price, model.MaxSalePrice,
		))
	}
	return &p, nil
}

// ValidateAmount validates an amount (a non negative integer).
func ValidateAmount(
	ctx context.Context,
	amount string,
) (*int64, error) {
	a, err := strconv.ParseInt(amount, 10, 64)
	if err != nil || a < 0 {
		return nil, errors.Trace(errors.NewUserErrorf(err,
			400, "invalid_amount",
			"The amount provided is invalid: %s. Amounts must be non "+
				"negative integers.",
			amount,
		))
	}
	return &a, nil
}

// ValidateBool validates a boolean parameter.
func ValidateBool(
	ctx context.Context,
	field string,
	value string,
) (*bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil, errors.Trace(errors.NewUserErrorf(err,
			400, "invalid_"+field,
			"The %s provided is invalid: %s. Expected true or false.",
			field, value,
		))
	}
	return &b, nil
}

// ValidateFeeBasisPoints validates a royalty fee expressed in basis points.
func ValidateFeeBasisPoints(
	ctx context.Context,
	fee string,
) (*int64, error) {
	f, err := strconv.ParseInt(fee, 10, 64)
	if err != nil || f < 0 || f > model.MaxBasisPoints {
		return nil, errors.Trace(errors.NewUserErrorf(err,
			400, "invalid_seller_fee_basis_points",
			"The seller fee provided is invalid: %s. Fees are expressed "+
				"in basis points between 0 and %d.",
			fee, model.MaxBasisPoints,
		))
	}
	return &f, nil
}

// ValidateCreators validates a JSON encoded creator list: at most
// model.MaxCreators entries whose shares sum to no more than 100.
func ValidateCreators(
	ctx context.Context,
	creators string,
) (model.CreatorList, error) {
	var list model.CreatorList
	if err := json.Unmarshal([]byte(creators), &list); err != nil {
		return nil, errors.Trace(errors.NewUserErrorf(err,
			400, "invalid_creators",
			"The creator list provided is not valid JSON: %s.",
			creators,
		))
	}
	if len(list) > model.MaxCreators {
		return nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_creators",
			"The creator list provided has %d entries while at most %d "+
				"creators are supported.",
			len(list), model.MaxCreators,
		))
	}
	for _, c := range list {
		if c.Share < 0 || int64(c.Share) > 100 {
			return nil, errors.Trace(errors.NewUserErrorf(nil,
				400, "invalid_creators",
				"The share of creator %s is invalid: %d. Shares are "+
					"percentages between 0 and 100.",
				c.Address, c.Share,
			))
		}
	}
	if list.ShareSum() > 100 {
		return nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_creators",
			"The creator shares provided sum to %d. Shares cannot sum to "+
				"more than 100.",
			list.ShareSum(),
		))
	}
	return list, nil
}
