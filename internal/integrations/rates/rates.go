package rates

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/dkrylov/irrbb-service/internal/config"
	"github.com/dkrylov/irrbb-service/internal/models"
	"github.com/sirupsen/logrus"
)

// Client fetches the market-rate tenor table from an XML rate feed
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new rate feed client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.RatesFeedURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// buildSOAPRequest creates a SOAP request for the market rate table
func (c *Client) buildSOAPRequest() string {
	onDate := time.Now().Format("2006-01-02")
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
		<soap12:Envelope xmlns:soap12="http://www.w3.org/2003/05/soap-envelope">
			<soap12:Body>
				<MarketRates xmlns="http://web.rates.local/">
					<OnDate>%s</OnDate>
				</MarketRates>
			</soap12:Body>
		</soap12:Envelope>`, onDate)
}

// sendRequest sends the SOAP request to the feed
func (c *Client) sendRequest(soapRequest string) ([]byte, error) {
	req, err := http.NewRequest("POST", c.url, bytes.NewBuffer([]byte(soapRequest)))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/soap+xml; charset=utf-8")
	req.Header.Set("SOAPAction", "http://web.rates.local/MarketRates")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	c.log.Debugf("Rate feed XML response: %s", string(body))

	return body, nil
}

// parseXMLResponse extracts the (tenor, rate) table from the XML response
func (c *Client) parseXMLResponse(rawBody []byte) ([]models.MarketPoint, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %v", err)
	}

	rateElements := doc.FindElements("//MarketRates/Rate")
	if len(rateElements) == 0 {
		return nil, fmt.Errorf("no market rate data found in XML")
	}

	points := make([]models.MarketPoint, 0, len(rateElements))
	for _, el := range rateElements {
		tenorEl := el.FindElement("./Tenor")
		valueEl := el.FindElement("./Value")
		if tenorEl == nil || valueEl == nil {
			return nil, fmt.Errorf("malformed rate element in XML")
		}

		months, err := ParseTenor(tenorEl.Text())
		if err != nil {
			return nil, err
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(valueEl.Text()), 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rate for tenor %s: %v", tenorEl.Text(), err)
		}
		points = append(points, models.MarketPoint{TenorMonths: months, Rate: value})
	}
	return points, nil
}

// GetMarketRates retrieves the current market-rate tenor table. At least
// two points are required downstream, so a shorter table is an error here.
func (c *Client) GetMarketRates() ([]models.MarketPoint, error) {
	if c.url == "" {
		return nil, fmt.Errorf("rate feed URL is not configured")
	}

	soapRequest := c.buildSOAPRequest()
	body, err := c.sendRequest(soapRequest)
	if err != nil {
		return nil, err
	}

	points, err := c.parseXMLResponse(body)
	if err != nil {
		return nil, err
	}
	if len(points) < 2 {
		return nil, fmt.Errorf("rate feed returned %d points, need at least 2", len(points))
	}

	c.log.Infof("Retrieved %d market rate points from feed", len(points))
	return points, nil
}

// ParseTenor converts a tenor string like "3M" or "10Y" to months
func ParseTenor(tenor string) (int, error) {
	tenor = strings.TrimSpace(strings.ToUpper(tenor))
	if len(tenor) < 2 {
		return 0, fmt.Errorf("invalid tenor string %q: expected 'XM' or 'XY'", tenor)
	}
	n, err := strconv.Atoi(tenor[:len(tenor)-1])
	if err != nil {
		return 0, fmt.Errorf("invalid tenor string %q: %v", tenor, err)
	}
	switch tenor[len(tenor)-1] {
	case 'M':
		return n, nil
	case 'Y':
		return n * 12, nil
	default:
		return 0, fmt.Errorf("invalid tenor string %q: expected 'XM' or 'XY'", tenor)
	}
}
