package rates

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowiq/cashflow-service/internal/config"
)

const soapResponse = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope">
  <soap:Body>
    <GetCursOnDateResponse xmlns="http://web.cbr.ru/">
      <GetCursOnDateResult>
        <ValuteData>
          <ValuteCursOnDate>
            <Vname>Euro</Vname>
            <Vnom>1</Vnom>
            <Vcurs>99.1234</Vcurs>
            <Vcode>978</Vcode>
            <VchCode>EUR</VchCode>
          </ValuteCursOnDate>
          <ValuteCursOnDate>
            <Vname>US Dollar</Vname>
            <Vnom>1</Vnom>
            <Vcurs>92.5000</Vcurs>
            <Vcode>840</Vcode>
            <VchCode>USD</VchCode>
          </ValuteCursOnDate>
        </ValuteData>
      </GetCursOnDateResult>
    </GetCursOnDateResponse>
  </soap:Body>
</soap:Envelope>`

func newTestRatesClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewClient(&config.Config{RatesURL: srv.URL}, log)
}

func TestGetUSDRate(t *testing.T) {
	var gotContentType, gotBody string
	client := newTestRatesClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		w.Write([]byte(soapResponse))
	})

	rate, err := client.GetUSDRate()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(gotContentType, "application/soap+xml"))
	assert.Contains(t, gotBody, "<GetCursOnDate")
	assert.Equal(t, "92.5", rate.String())
}

func TestGetUSDRate_NoUSDEntry(t *testing.T) {
	client := newTestRatesClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<Envelope><Body></Body></Envelope>`))
	})

	_, err := client.GetUSDRate()
	assert.ErrorContains(t, err, "no USD rate found")
}

func TestGetUSDRate_ServerError(t *testing.T) {
	client := newTestRatesClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusBadGateway)
	})

	_, err := client.GetUSDRate()
	assert.ErrorContains(t, err, "unexpected status code")
}

func TestGetUSDRate_MalformedXML(t *testing.T) {
	client := newTestRatesClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<unclosed"))
	})

	_, err := client.GetUSDRate()
	assert.Error(t, err)
}
