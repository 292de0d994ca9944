package handler

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"google.golang.org/protobuf/types/known/structpb"
)

func parseID(req *structpb.Struct) (int64, error) {
	v, ok := req.GetFields()["id"]
	if !ok {
		return 0, errors.New("id is required")
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || n.NumberValue != math.Trunc(n.NumberValue) || n.NumberValue <= 0 {
		return 0, errors.New("id must be a positive integer")
	}
	return int64(n.NumberValue), nil
}

func parseNewCompleteProduct(req *structpb.Struct) (*model.NewCompleteProduct, error) {
	fields := req.GetFields()

	out := &model.NewCompleteProduct{}
	if v, ok := fields["name"]; ok {
		s, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, errors.New("name must be a string")
		}
		out.Product.Name = s.StringValue
	}
	if v, ok := fields["cost"]; ok {
		n, ok := v.GetKind().(*structpb.Value_NumberValue)
		if !ok {
			return nil, errors.New("cost must be a number")
		}
		out.Product.Cost = n.NumberValue
	}
	if v, ok := fields["active"]; ok {
		b, ok := v.GetKind().(*structpb.Value_BoolValue)
		if !ok {
			return nil, errors.New("active must be a boolean")
		}
		out.Product.Active = b.BoolValue
	}

	for i, item := range fields["variants"].GetListValue().GetValues() {
		variant := item.GetStructValue()
		if variant == nil {
			return nil, fmt.Errorf("variants[%d] must be an object", i)
		}

		nv := model.NewVariantValue{
			Variant: model.NewVariant{Name: variant.GetFields()["name"].GetStringValue()},
		}
		for j, raw := range variant.GetFields()["values"].GetListValue().GetValues() {
			value, err := parseVariantValue(raw)
			if err != nil {
				return nil, fmt.Errorf("variants[%d].values[%d]: %w", i, j, err)
			}
			nv.Values = append(nv.Values, value)
		}
		out.Variants = append(out.Variants, nv)
	}

	return out, nil
}

// parseVariantValue accepts strings, numbers (stored in their shortest
// decimal form) and null.
func parseVariantValue(v *structpb.Value) (*string, error) {
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return nil, nil
	case *structpb.Value_StringValue:
		return model.StringValue(kind.StringValue), nil
	case *structpb.Value_NumberValue:
		return model.StringValue(strconv.FormatFloat(kind.NumberValue, 'f', -1, 64)), nil
	default:
		return nil, errors.New("value must be a string, number or null")
	}
}

func productToMap(p *model.ProductWithVariants) map[string]any {
	variants := make([]any, len(p.Variants))
	for i, vv := range p.Variants {
		var value any
		if vv.ProductVariant.Value != nil {
			value = *vv.ProductVariant.Value
		}
		variants[i] = map[string]any{
			"id":           vv.ProductVariant.ID,
			"product_id":   vv.ProductVariant.ProductID,
			"variant_id":   vv.ProductVariant.VariantID,
			"variant_name": vv.Variant.Name,
			"value":        value,
		}
	}

	return map[string]any{
		"id":       p.Product.ID,
		"name":     p.Product.Name,
		"cost":     p.Product.Cost,
		"active":   p.Product.Active,
		"variants": variants,
	}
}
