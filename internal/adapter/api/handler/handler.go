package handler

import (
	"sellit/internal/usecase"
)

var (
	listingHandler      *ListingHandler
	offerHandler        *OfferHandler
	chatHandler         *ChatHandler
	broadcastHandler    *BroadcastHandler
	notificationHandler *NotificationHandler
	advisoryHandler     *AdvisoryHandler
	userHandler         *UserHandler
)

func Setup(
	listingUseCase *usecase.ListingUseCase,
	offerUseCase *usecase.OfferUseCase,
	chatUseCase *usecase.ChatUseCase,
	broadcastUseCase *usecase.BroadcastUseCase,
	notificationUseCase *usecase.NotificationUseCase,
	advisoryUseCase *usecase.AdvisoryUseCase,
	userUseCase *usecase.UserUseCase,
) {
	listingHandler = NewListingHandler(listingUseCase)
	offerHandler = NewOfferHandler(offerUseCase)
	chatHandler = NewChatHandler(chatUseCase)
	broadcastHandler = NewBroadcastHandler(broadcastUseCase, chatUseCase)
	notificationHandler = NewNotificationHandler(notificationUseCase)
	advisoryHandler = NewAdvisoryHandler(advisoryUseCase)
	userHandler = NewUserHandler(userUseCase)
}

func GetListingHandler() *ListingHandler {
	return listingHandler
}

func GetOfferHandler() *OfferHandler {
	return offerHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}

func GetBroadcastHandler() *BroadcastHandler {
	return broadcastHandler
}

func GetNotificationHandler() *NotificationHandler {
	return notificationHandler
}

func GetAdvisoryHandler() *AdvisoryHandler {
	return advisoryHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}
