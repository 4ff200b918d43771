// Package rates fetches the central-bank USD reference rate shown next
// to local-currency figures in reports.
package rates

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/flowiq/cashflow-service/internal/config"
)

// Client handles integration with the central bank rates service
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new rates client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.RatesURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// buildSOAPRequest creates a SOAP request for today's official rates
func (c *Client) buildSOAPRequest() string {
	onDate := time.Now().UTC().Format("2006-01-02")
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
		<soap12:Envelope xmlns:soap12="http://www.w3.org/2003/05/soap-envelope">
			<soap12:Body>
				<GetCursOnDate xmlns="http://web.cbr.ru/">
					<On_date>%s</On_date>
				</GetCursOnDate>
			</soap12:Body>
		</soap12:Envelope>`, onDate)
}

// sendRequest sends the SOAP request to the rates service
func (c *Client) sendRequest(soapRequest string) ([]byte, error) {
	req, err := http.NewRequest("POST", c.url, bytes.NewBuffer([]byte(soapRequest)))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/soap+xml; charset=utf-8")
	req.Header.Set("SOAPAction", "http://web.cbr.ru/GetCursOnDate")

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

	c.log.Debugf("Rates XML response: %s", string(body))

	return body, nil
}

// parseXMLResponse extracts the USD rate from the SOAP response
func (c *Client) parseXMLResponse(rawBody []byte) (decimal.Decimal, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse XML: %v", err)
	}

	for _, el := range doc.FindElements("//ValuteCursOnDate") {
		code := el.FindElement("./VchCode")
		if code == nil || code.Text() != "USD" {
			continue
		}
		cursEl := el.FindElement("./Vcurs")
		if cursEl == nil {
			return decimal.Zero, fmt.Errorf("rate element not found in XML")
		}
		rate, err := decimal.NewFromString(cursEl.Text())
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to parse rate: %v", err)
		}
		return rate, nil
	}

	return decimal.Zero, fmt.Errorf("no USD rate found in XML")
}

// GetUSDRate retrieves the current official USD reference rate
func (c *Client) GetUSDRate() (decimal.Decimal, error) {
	soapRequest := c.buildSOAPRequest()
	body, err := c.sendRequest(soapRequest)
	if err != nil {
		return decimal.Zero, err
	}

	rate, err := c.parseXMLResponse(body)
	if err != nil {
		return decimal.Zero, err
	}

	c.log.Infof("Retrieved USD reference rate: %s", rate)
	return rate, nil
}
