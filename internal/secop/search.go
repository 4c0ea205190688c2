package secop

import (
	"fmt"
	"net/url"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

type SearchParams struct {
	// Full text search across the dataset.
	Text string `yaml:"text" soparam:"$q"`
	// soparam is a custom tag for reflect. Please see buildParams below.
	Entity       string   `yaml:"entity" soparam:"entidad"`
	Department   string   `yaml:"department" soparam:"departamento_entidad"`
	City         string   `yaml:"city" soparam:"ciudad_entidad"`
	ContractType string   `yaml:"contract_type" mapstructure:"contract-type" soparam:"tipo_de_contrato"`
	Modality     string   `yaml:"modality" soparam:"modalidad_de_contratacion"`
	Phases       []string `yaml:"phases" soparam:"fase"`
	Category     string   `yaml:"category" soparam:"codigo_principal_de_categoria"`
	OrderBy      string   `yaml:"order_by" mapstructure:"order-by" soparam:"$order"`
	Limit        uint     `yaml:"limit" soparam:"$limit"`
}

func (c *Client) search(params *SearchParams) (*Tenders, error) {
	searchURL := fmt.Sprintf("%s%s", c.APIURL, processesPath)

	items, err := c.GetItems(searchURL, buildParams(params))
	if err != nil {
		return nil, err
	}

	return c.decodeTenders(items), nil
}

func (c *Client) getTender(id string) (*Tender, error) {
	q := url.Values{}
	q.Set("id_del_proceso", id)
	q.Set("$limit", "1")

	var page []Item
	searchURL := fmt.Sprintf("%s%s", c.APIURL, processesPath)
	if err := c.getJSON(searchURL, q, &page); err != nil {
		return nil, err
	}

	if len(page) == 0 {
		return nil, fmt.Errorf("tender %s not found", id)
	}

	tenders := c.decodeTenders(page)
	if tenders.Len() == 0 {
		return nil, fmt.Errorf("tender %s could not be decoded", id)
	}
	return tenders.Items[0], nil
}

// decodeTenders normalizes raw feed items into Tender records. Items that do
// not decode are skipped individually; the feed carries the occasional
// malformed row and one bad record must not discard a whole page.
func (c *Client) decodeTenders(items []Item) *Tenders {
	tenders := &Tenders{Items: make([]*Tender, 0, len(items))}

	for _, item := range items {
		var tender Tender
		cfg := &mapstructure.DecoderConfig{
			DecodeHook:       linkHook,
			Result:           &tender,
			TagName:          "json",
			WeaklyTypedInput: true,
		}

		decoder, err := mapstructure.NewDecoder(cfg)
		if err != nil {
			return tenders
		}

		if err := decoder.Decode(map[string]any(item)); err != nil {
			c.logger.Debug("skipping undecodable feed item", zap.Error(err))
			continue
		}

		tenders.Items = append(tenders.Items, &tender)
	}

	return tenders
}

// linkHook flattens the urlproceso field, which the feed publishes either as
// a bare string or as an object with a nested "url" key.
func linkHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(Link("")) {
		return data, nil
	}

	switch v := data.(type) {
	case string:
		return Link(v), nil
	case map[string]any:
		if nested, ok := v["url"].(string); ok {
			return Link(nested), nil
		}
		return Link(""), nil
	default:
		return Link(""), nil
	}
}

func buildParams(params *SearchParams) url.Values {
	q := url.Values{}
	fields := reflect.VisibleFields(reflect.TypeOf(*params))
	for _, field := range fields {
		// Our custom tag is using here.
		key := field.Tag.Get("soparam")
		if key == "" {
			key = field.Tag.Get("yaml")
		}
		kind := field.Type.Kind()
		switch kind {
		case reflect.Slice:
			s := reflect.ValueOf(params).Elem().Field(field.Index[0]).Interface()
			if v, ok := s.([]string); ok {
				for _, value := range v {
					q.Add(key, value)
				}
			}

		default:
			value := fmt.Sprintf("%v", reflect.ValueOf(params).Elem().Field(field.Index[0]).Interface())
			if value != "" && value != "0" {
				q.Set(key, value)
			}
		}
	}

	return q
}
