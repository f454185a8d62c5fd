package controllers

import (
	"github.com/gorilla/mux"
)

func (server *Server) initializeRoutes() {
	server.Router = mux.NewRouter()

	// =======================
	//        PAYMENTS
	// =======================
	api := server.Router.PathPrefix("/api/payments").Subrouter()
	api.Use(server.AuthMiddleware)

	api.HandleFunc("", server.CreatePayment).Methods("POST")
	api.HandleFunc("", server.GetPayments).Methods("GET")

	// fixed paths must be registered before the {id} matcher
	api.HandleFunc("/get_status_payment_info", server.GetPaymentStatusInfo).Methods("POST")
	api.HandleFunc("/get_payment_info_list", server.GetPaymentInfoList).Methods("GET")

	api.HandleFunc("/{id}", server.GetPayment).Methods("GET")
	api.HandleFunc("/status/{transactionId}", server.CheckStatus).Methods("GET")
	api.HandleFunc("/{transactionId}/refund", server.RefundPayment).Methods("POST")
}
